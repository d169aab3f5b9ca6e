package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/internal/validator"
	"rastaka_backend/pkg/apperrors"
	"rastaka_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// Access - middleware доступа, которые хэндлеры вешают на свои маршруты
type Access struct {
	Auth         gin.HandlerFunc // любой вошедший администратор/редактор
	OptionalAuth gin.HandlerFunc
	Write        gin.HandlerFunc // создание и изменение контента
	Delete       gin.HandlerFunc // удаление (только ADMIN)
	InboxRead    gin.HandlerFunc
	InboxDelete  gin.HandlerFunc
}

// ============================================================================
// 2. DB из контекста
// ============================================================================

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Привязка и валидация
// ============================================================================

// BindAndValidate - тело по Content-Type (JSON, form, multipart)
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, c.ShouldBind, "Invalid request body: ")
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, c.ShouldBindJSON, "Invalid request body: ")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, c.ShouldBindQuery, "Invalid query parameters: ")
}

func (h *BaseHandler) bind(c *gin.Context, obj interface{}, bindFn func(interface{}) error, prefix string) bool {
	ctx := c.Request.Context()

	err := bindFn(obj)
	if err == nil {
		// gin валидирует сам, если binding.Validator - наш; иначе проверяем здесь
		if _, ours := binding.Validator.(*validator.Validator); !ours {
			err = h.validator.Validate(obj)
		}
	}
	if err == nil {
		return true
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		return false
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return false
	}

	logger.CtxWithError(ctx, "Failed to bind request", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.NewBadRequestError(prefix+err.Error()))
	return false
}

// ============================================================================
// 4. Ошибки сервисов
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Параметры и файлы
// ============================================================================

// ParseIDParam - числовой ID из пути; пишет 400 в ответ при ошибке
func (h *BaseHandler) ParseIDParam(c *gin.Context, key string) (int64, bool) {
	id, err := dto.ParseID(c.Param(key))
	if err != nil || id <= 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid path parameter: "+key))
		return 0, false
	}
	return id.Int64(), true
}

// OptionalFile - файл из multipart-поля; для JSON-запросов и пустого поля nil
func (h *BaseHandler) OptionalFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, true
	}
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid file field: "+field))
		return nil, false
	}
	return file, true
}

// FormFiles - все файлы из multipart-поля (пусто, если поля нет)
func (h *BaseHandler) FormFiles(c *gin.Context, field string) []*multipart.FileHeader {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

// ParseTagIDs - tagIds из формы: повторяющиеся поля, JSON-массив или CSV
func (h *BaseHandler) ParseTagIDs(c *gin.Context) (*dto.IDList, bool) {
	values, present := c.GetPostFormArray("tagIds")
	if !present {
		values, present = c.GetPostFormArray("tagIds[]")
	}
	if !present {
		return nil, true
	}

	ids, err := dto.ParseIDList(values)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid tagIds: "+err.Error()))
		return nil, false
	}
	return &ids, true
}
