package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NotFound - то же самое, но с доменом и сообщением
func NotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrHasDependents - удаление запрещено, пока есть связанные записи (409)
func ErrHasDependents(domain, message string) *AppError {
	return New(CodeHasDependents, domain, message, http.StatusConflict)
}

// ErrStorage - ошибка файлового хранилища (500)
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "File storage error", http.StatusInternalServerError)
}

// =========================================================================
// Фабричные ФУНКЦИИ (Для создания новых ошибок)
// =========================================================================

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrNoFieldsToUpdate - PATCH без единого поля (400)
func ErrNoFieldsToUpdate(domain string) *AppError {
	return New(CodeNoFieldsToUpdate, domain, "No fields to update", http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrSlugExhausted - не удалось подобрать свободный slug за допустимое число попыток.
var ErrSlugExhausted = New(
	CodeSlugExhausted,
	"slug",
	"Could not generate a unique slug",
	http.StatusConflict,
)

// ErrInsufficientPermissions - роль не позволяет выполнить действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер для одного запроса.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge, // 413
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"Only image and video files are allowed",
	http.StatusUnsupportedMediaType, // 415
)

// ErrFileRequired - в запросе нет обязательного файла.
var ErrFileRequired = New(
	CodeValidationFailed,
	"validation",
	"At least one media file is required",
	http.StatusBadRequest,
)

// ErrTooManyFiles - превышено число файлов в одном запросе.
var ErrTooManyFiles = New(
	CodeLimitExceeded,
	"validation",
	"Too many files in one request",
	http.StatusBadRequest,
)

// --- Auth ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
