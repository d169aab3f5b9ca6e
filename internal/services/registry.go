package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService      AuthService
	ClientService    ClientService
	WorkService      WorkService
	SectionService   SectionService
	MediaService     MediaService
	CompanyService   CompanyService
	PortfolioService PortfolioService
	SiteService      SiteService
	ContactService   ContactService
	UploadService    UploadService
}
