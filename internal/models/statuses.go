package models

type AdminRole string
type ClientType string
type WorkType string
type WorkStatus string
type SectionType string
type MediaFileType string
type PortfolioType string
type PortfolioCategory string
type ContactStatus string

const (
	AdminRoleAdmin  AdminRole = "ADMIN"
	AdminRoleEditor AdminRole = "EDITOR"

	ClientTypeIndividual ClientType = "INDIVIDUAL"
	ClientTypeCompany    ClientType = "COMPANY"

	WorkTypeLogo        WorkType = "LOGO"
	WorkTypeWebsite     WorkType = "WEBSITE"
	WorkTypeSocialMedia WorkType = "SOCIAL_MEDIA"
	WorkTypeReel        WorkType = "REEL"

	WorkStatusDraft     WorkStatus = "DRAFT"
	WorkStatusPublished WorkStatus = "PUBLISHED"
	WorkStatusArchived  WorkStatus = "ARCHIVED"

	SectionTypeOverview   SectionType = "OVERVIEW"
	SectionTypeGoals      SectionType = "GOALS"
	SectionTypeProcess    SectionType = "PROCESS"
	SectionTypeResults    SectionType = "RESULTS"
	SectionTypeBrandStory SectionType = "BRAND_STORY"
	SectionTypeTechStack  SectionType = "TECH_STACK"
	SectionTypeOther      SectionType = "OTHER"

	MediaImage MediaFileType = "IMAGE"
	MediaVideo MediaFileType = "VIDEO"

	PortfolioTypeWebsite     PortfolioType = "WEBSITE"
	PortfolioTypeLogo        PortfolioType = "LOGO"
	PortfolioTypeReel        PortfolioType = "REEL"
	PortfolioTypeSocialMedia PortfolioType = "SOCIAL_MEDIA"

	PortfolioCategoryCorporate  PortfolioCategory = "CORPORATE"
	PortfolioCategoryIndividual PortfolioCategory = "INDIVIDUAL"

	ContactStatusUnread   ContactStatus = "UNREAD"
	ContactStatusRead     ContactStatus = "READ"
	ContactStatusArchived ContactStatus = "ARCHIVED"
)

var (
	AdminRoles          = []AdminRole{AdminRoleAdmin, AdminRoleEditor}
	ClientTypes         = []ClientType{ClientTypeIndividual, ClientTypeCompany}
	WorkTypes           = []WorkType{WorkTypeLogo, WorkTypeWebsite, WorkTypeSocialMedia, WorkTypeReel}
	WorkStatuses        = []WorkStatus{WorkStatusDraft, WorkStatusPublished, WorkStatusArchived}
	SectionTypes        = []SectionType{SectionTypeOverview, SectionTypeGoals, SectionTypeProcess, SectionTypeResults, SectionTypeBrandStory, SectionTypeTechStack, SectionTypeOther}
	PortfolioTypes      = []PortfolioType{PortfolioTypeWebsite, PortfolioTypeLogo, PortfolioTypeReel, PortfolioTypeSocialMedia}
	PortfolioCategories = []PortfolioCategory{PortfolioCategoryCorporate, PortfolioCategoryIndividual}
	ContactStatuses     = []ContactStatus{ContactStatusUnread, ContactStatusRead, ContactStatusArchived}
)

// OneOf - значение входит в набор допустимых
func OneOf[T ~string](value T, allowed []T) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}
