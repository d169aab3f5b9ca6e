// Package mediaurl переписывает сохраненные относительные пути файлов
// в абсолютные URL на этапе формирования ответа. Модели не изменяются.
package mediaurl

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/services/dto"
)

type Transformer struct {
	baseURL string
}

// New - baseURL без завершающего "/" (лишние срезаются)
func New(baseURL string) *Transformer {
	return &Transformer{baseURL: strings.TrimRight(baseURL, "/")}
}

func (t *Transformer) BaseURL() string {
	return t.baseURL
}

// ToAbsoluteURL: пустой путь -> "", http(s)://... без изменений,
// иначе base + "/" + путь (ровно один разделитель).
func (t *Transformer) ToAbsoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return t.baseURL + "/" + strings.TrimLeft(path, "/")
}

// PortfolioItem строит ответ: mediaUrl абсолютный, mediaUrls из JSON-строки
// превращается в список абсолютных URL. Если JSON битый - пишем в лог и
// отдаем строку как есть. Вложенная компания тоже преобразуется.
func (t *Transformer) PortfolioItem(ctx context.Context, item *models.PortfolioItem) *dto.PortfolioItemResponse {
	if item == nil {
		return nil
	}

	resp := &dto.PortfolioItemResponse{
		ID:             dto.ID(item.ID),
		Title:          item.Title,
		Description:    item.Description,
		Type:           item.Type,
		Category:       item.Category,
		Slug:           item.Slug,
		MediaType:      item.MediaType,
		WebsiteURL:     item.WebsiteURL,
		ClientName:     item.ClientName,
		CompanyID:      dto.IDPtr(item.CompanyID),
		PublishDate:    item.PublishDate,
		SeoTitle:       item.SeoTitle,
		SeoDescription: item.SeoDescription,
		Keywords:       item.Keywords,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}

	if item.MediaURL != nil && *item.MediaURL != "" {
		abs := t.ToAbsoluteURL(*item.MediaURL)
		resp.MediaURL = &abs
	}

	if item.MediaURLs != nil && *item.MediaURLs != "" {
		resp.MediaURLs = t.mediaList(ctx, item.ID, *item.MediaURLs)
	}

	if item.Company != nil {
		resp.Company = t.Company(item.Company)
	}

	return resp
}

func (t *Transformer) PortfolioItems(ctx context.Context, items []models.PortfolioItem) []*dto.PortfolioItemResponse {
	out := make([]*dto.PortfolioItemResponse, 0, len(items))
	for i := range items {
		out = append(out, t.PortfolioItem(ctx, &items[i]))
	}
	return out
}

// mediaList: значение должно быть JSON-массивом, иначе (включая null)
// отдается исходная строка. Пустые и null элементы пропускаются.
func (t *Transformer) mediaList(ctx context.Context, itemID int64, raw string) *dto.MediaURLs {
	var paths []*string
	err := json.Unmarshal([]byte(raw), &paths)
	if err == nil && paths == nil {
		err = errors.New("mediaUrls is not a JSON array")
	}
	if err != nil {
		logger.CtxWarn(ctx, "failed to parse mediaUrls, returning stored value",
			"portfolio_item_id", itemID,
			"error", err.Error(),
		)
		return &dto.MediaURLs{Raw: raw, Unparsed: true}
	}

	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == nil || *p == "" {
			continue
		}
		urls = append(urls, t.ToAbsoluteURL(*p))
	}
	return &dto.MediaURLs{URLs: urls}
}

// Company - ответ с абсолютным logo
func (t *Transformer) Company(company *models.Company) *dto.CompanyResponse {
	if company == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:             dto.ID(company.ID),
		Name:           company.Name,
		Description:    company.Description,
		Slug:           company.Slug,
		Logo:           t.ToAbsoluteURL(company.Logo),
		SeoTitle:       company.SeoTitle,
		SeoDescription: company.SeoDescription,
		SeoKeywords:    company.SeoKeywords,
		CreatedAt:      company.CreatedAt,
		UpdatedAt:      company.UpdatedAt,
	}
}

func (t *Transformer) Client(client *models.Client) *dto.ClientResponse {
	if client == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          dto.ID(client.ID),
		Name:        client.Name,
		Type:        client.Type,
		Slug:        client.Slug,
		Description: client.Description,
		WebsiteURL:  client.WebsiteURL,
		LogoURL:     t.ToAbsoluteURL(client.LogoURL),
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}
}

func (t *Transformer) Media(m *models.Media) *dto.MediaResponse {
	if m == nil {
		return nil
	}
	return &dto.MediaResponse{
		ID:           dto.ID(m.ID),
		WorkID:       dto.ID(m.WorkID),
		SectionID:    dto.IDPtr(m.SectionID),
		FileType:     m.FileType,
		FileURL:      t.ToAbsoluteURL(m.FileURL),
		AltText:      m.AltText,
		ThumbnailURL: t.ToAbsoluteURL(m.ThumbnailURL),
		IsPrimary:    m.IsPrimary,
		SortOrder:    m.SortOrder,
		CreatedAt:    m.CreatedAt,
	}
}

func (t *Transformer) MediaList(media []models.Media) []*dto.MediaResponse {
	out := make([]*dto.MediaResponse, 0, len(media))
	for i := range media {
		out = append(out, t.Media(&media[i]))
	}
	return out
}

func (t *Transformer) Section(s *models.WorkSection) *dto.SectionResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SectionResponse{
		ID:          dto.ID(s.ID),
		WorkID:      dto.ID(s.WorkID),
		SectionType: s.SectionType,
		Title:       s.Title,
		Body:        s.Body,
		SortOrder:   s.SortOrder,
		Highlight:   s.Highlight,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if len(s.Media) > 0 {
		resp.Media = t.MediaList(s.Media)
	}
	return resp
}

// Work - ответ с клиентом, тегами, секциями и медиа (то, что было загружено).
// PrimaryMedia - медиа с isPrimary, иначе первое по sortOrder.
func (t *Transformer) Work(w *models.Work) *dto.WorkResponse {
	if w == nil {
		return nil
	}
	resp := &dto.WorkResponse{
		ID:             dto.ID(w.ID),
		ClientID:       dto.ID(w.ClientID),
		Type:           w.Type,
		Status:         w.Status,
		Title:          w.Title,
		Slug:           w.Slug,
		ShortDesc:      w.ShortDesc,
		HeroSubtitle:   w.HeroSubtitle,
		PublishDate:    w.PublishDate,
		VisitURL:       w.VisitURL,
		IsFeatured:     w.IsFeatured,
		SeoTitle:       w.SeoTitle,
		SeoDescription: w.SeoDescription,
		SeoKeywords:    w.SeoKeywords,
		Client:         t.Client(w.Client),
		Tags:           make([]*dto.TagResponse, 0, len(w.Tags)),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
	for i := range w.Tags {
		resp.Tags = append(resp.Tags, dto.NewTagResponse(&w.Tags[i]))
	}
	for i := range w.Sections {
		resp.Sections = append(resp.Sections, t.Section(&w.Sections[i]))
	}
	if len(w.Media) > 0 {
		resp.Media = t.MediaList(w.Media)
		resp.PrimaryMedia = resp.Media[0]
		for _, m := range resp.Media {
			if m.IsPrimary {
				resp.PrimaryMedia = m
				break
			}
		}
	}
	return resp
}

func (t *Transformer) Works(works []models.Work) []*dto.WorkResponse {
	out := make([]*dto.WorkResponse, 0, len(works))
	for i := range works {
		out = append(out, t.Work(&works[i]))
	}
	return out
}
