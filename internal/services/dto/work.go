package dto

import (
	"time"

	"rastaka_backend/internal/models"
)

type WorkListQuery struct {
	Status     models.WorkStatus `form:"status" binding:"omitempty,work-status"`
	Type       models.WorkType   `form:"type" binding:"omitempty,work-type"`
	ClientID   *ID               `form:"clientId"`
	ClientType models.ClientType `form:"clientType" binding:"omitempty,client-type"`
	Featured   *bool             `form:"featured"`
	Page       int               `form:"page" binding:"omitempty,min=1"`
	PageSize   int               `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// CreateWorkRequest - multipart/form-data (обложка в поле "file") или JSON.
// tagIds в форме разбирается отдельно (см. ParseIDList).
type CreateWorkRequest struct {
	ClientID       ID                `json:"clientId" form:"clientId" binding:"required"`
	Type           models.WorkType   `json:"type" form:"type" binding:"required,work-type"`
	Status         models.WorkStatus `json:"status" form:"status" binding:"omitempty,work-status"`
	Title          string            `json:"title" form:"title" binding:"required,max=255"`
	ShortDesc      string            `json:"shortDesc" form:"shortDesc"`
	HeroSubtitle   string            `json:"heroSubtitle" form:"heroSubtitle" binding:"max=500"`
	PublishDate    *time.Time        `json:"publishDate" form:"publishDate"`
	VisitURL       string            `json:"visitUrl" form:"visitUrl" binding:"omitempty,url,max=500"`
	IsFeatured     bool              `json:"isFeatured" form:"isFeatured"`
	SeoTitle       string            `json:"seoTitle" form:"seoTitle" binding:"max=255"`
	SeoDescription string            `json:"seoDescription" form:"seoDescription"`
	SeoKeywords    string            `json:"seoKeywords" form:"seoKeywords"`
	TagIDs         IDList            `json:"tagIds" form:"-"`
}

type UpdateWorkRequest struct {
	ClientID       *ID                `json:"clientId" form:"clientId"`
	Type           *models.WorkType   `json:"type" form:"type" binding:"omitempty,work-type"`
	Status         *models.WorkStatus `json:"status" form:"status" binding:"omitempty,work-status"`
	Title          *string            `json:"title" form:"title" binding:"omitempty,min=1,max=255"`
	ShortDesc      *string            `json:"shortDesc" form:"shortDesc"`
	HeroSubtitle   *string            `json:"heroSubtitle" form:"heroSubtitle" binding:"omitempty,max=500"`
	PublishDate    *time.Time         `json:"publishDate" form:"publishDate"`
	VisitURL       *string            `json:"visitUrl" form:"visitUrl" binding:"omitempty,max=500"`
	IsFeatured     *bool              `json:"isFeatured" form:"isFeatured"`
	SeoTitle       *string            `json:"seoTitle" form:"seoTitle" binding:"omitempty,max=255"`
	SeoDescription *string            `json:"seoDescription" form:"seoDescription"`
	SeoKeywords    *string            `json:"seoKeywords" form:"seoKeywords"`
	TagIDs         *IDList            `json:"tagIds" form:"-"`
}

func (r *UpdateWorkRequest) IsEmpty() bool {
	return r.ClientID == nil && r.Type == nil && r.Status == nil && r.Title == nil &&
		r.ShortDesc == nil && r.HeroSubtitle == nil && r.PublishDate == nil && r.VisitURL == nil &&
		r.IsFeatured == nil && r.SeoTitle == nil && r.SeoDescription == nil && r.SeoKeywords == nil &&
		r.TagIDs == nil
}

type WorkResponse struct {
	ID             ID                 `json:"id"`
	ClientID       ID                 `json:"clientId"`
	Type           models.WorkType    `json:"type"`
	Status         models.WorkStatus  `json:"status"`
	Title          string             `json:"title"`
	Slug           string             `json:"slug"`
	ShortDesc      string             `json:"shortDesc,omitempty"`
	HeroSubtitle   string             `json:"heroSubtitle,omitempty"`
	PublishDate    time.Time          `json:"publishDate"`
	VisitURL       string             `json:"visitUrl,omitempty"`
	IsFeatured     bool               `json:"isFeatured"`
	SeoTitle       string             `json:"seoTitle,omitempty"`
	SeoDescription string             `json:"seoDescription,omitempty"`
	SeoKeywords    string             `json:"seoKeywords,omitempty"`
	Client         *ClientResponse    `json:"client,omitempty"`
	Tags           []*TagResponse     `json:"tags"`
	Sections       []*SectionResponse `json:"sections,omitempty"`
	Media          []*MediaResponse   `json:"media,omitempty"`
	PrimaryMedia   *MediaResponse     `json:"primaryMedia,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type WorkListResponse struct {
	Works    []*WorkResponse `json:"works"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type TagResponse struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewTagResponse(t *models.Tag) *TagResponse {
	return &TagResponse{ID: ID(t.ID), Name: t.Name, Slug: t.Slug}
}

// Sections

type CreateSectionRequest struct {
	SectionType models.SectionType `json:"sectionType" binding:"required,section-type"`
	Title       string             `json:"title" binding:"max=255"`
	Body        string             `json:"body"`
	SortOrder   int                `json:"sortOrder"`
	Highlight   string             `json:"highlight"`
}

type UpdateSectionRequest struct {
	SectionType *models.SectionType `json:"sectionType" binding:"omitempty,section-type"`
	Title       *string             `json:"title" binding:"omitempty,max=255"`
	Body        *string             `json:"body"`
	SortOrder   *int                `json:"sortOrder"`
	Highlight   *string             `json:"highlight"`
}

func (r *UpdateSectionRequest) IsEmpty() bool {
	return r.SectionType == nil && r.Title == nil && r.Body == nil && r.SortOrder == nil && r.Highlight == nil
}

type SectionResponse struct {
	ID          ID                 `json:"id"`
	WorkID      ID                 `json:"workId"`
	SectionType models.SectionType `json:"sectionType"`
	Title       string             `json:"title,omitempty"`
	Body        string             `json:"body,omitempty"`
	SortOrder   int                `json:"sortOrder"`
	Highlight   string             `json:"highlight,omitempty"`
	Media       []*MediaResponse   `json:"media,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Media

// UploadMediaRequest - multipart/form-data, файл в поле "file"
type UploadMediaRequest struct {
	WorkID    ID     `form:"workId" binding:"required"`
	SectionID *ID    `form:"sectionId"`
	AltText   string `form:"altText" binding:"max=255"`
	IsPrimary bool   `form:"isPrimary"`
	SortOrder int    `form:"sortOrder"`
}

type UpdateMediaRequest struct {
	AltText   *string `json:"altText" binding:"omitempty,max=255"`
	SortOrder *int    `json:"sortOrder"`
	IsPrimary *bool   `json:"isPrimary"`
}

func (r *UpdateMediaRequest) IsEmpty() bool {
	return r.AltText == nil && r.SortOrder == nil && r.IsPrimary == nil
}

type MediaResponse struct {
	ID           ID                   `json:"id"`
	WorkID       ID                   `json:"workId"`
	SectionID    *ID                  `json:"sectionId"`
	FileType     models.MediaFileType `json:"fileType"`
	FileURL      string               `json:"fileUrl"`
	AltText      string               `json:"altText,omitempty"`
	ThumbnailURL string               `json:"thumbnailUrl,omitempty"`
	IsPrimary    bool                 `json:"isPrimary"`
	SortOrder    int                  `json:"sortOrder"`
	CreatedAt    time.Time            `json:"createdAt"`
}
