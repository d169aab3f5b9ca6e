package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	ClientHandler    *ClientHandler
	WorkHandler      *WorkHandler
	SectionHandler   *SectionHandler
	MediaHandler     *MediaHandler
	CompanyHandler   *CompanyHandler
	PortfolioHandler *PortfolioHandler
	SiteHandler      *SiteHandler
	ContactHandler   *ContactHandler
	HealthHandler    *HealthHandler
}
