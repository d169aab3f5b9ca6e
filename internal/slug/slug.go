// Package slug строит URL-безопасные идентификаторы из заголовков
// и подбирает свободный вариант в пределах одной коллекции.
package slug

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"rastaka_backend/pkg/apperrors"
)

const (
	// DefaultBase используется, когда после нормализации ничего не осталось
	DefaultBase = "item"
	// DefaultMaxAttempts - сколько кандидатов (base, base-2, ...) проверяется до отказа
	DefaultMaxAttempts = 1000
	// DefaultMaxLength - длина slug-колонок (varchar(255)), в символах
	DefaultMaxLength = 255
	minMaxLength     = 16
)

var (
	whitespace      = regexp.MustCompile(`[\s\p{Z}]+`)
	disallowed      = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify нормализует текст: пробелы -> "-", все кроме букв (любого алфавита),
// цифр, "_" и "-" удаляется, повторные дефисы схлопываются, крайние обрезаются.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespace.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Checker сообщает, занят ли slug в конкретной коллекции
type Checker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// CheckerFunc - адаптер функции к Checker
type CheckerFunc func(ctx context.Context, slug string) (bool, error)

func (f CheckerFunc) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f(ctx, slug)
}

type Generator struct {
	maxAttempts int
	maxLength   int
}

func NewGenerator(maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{maxAttempts: maxAttempts, maxLength: DefaultMaxLength}
}

// WithMaxLength - копия генератора с другим пределом длины (в символах)
func (g *Generator) WithMaxLength(n int) *Generator {
	if n < minMaxLength {
		n = minMaxLength
	}
	cp := *g
	cp.maxLength = n
	return &cp
}

// MaxLength - предел длины кандидата вместе с суффиксом
func (g *Generator) MaxLength() int {
	return g.maxLength
}

// Generate возвращает первый свободный кандидат из base, base-2, base-3, ...
// Ошибка хранилища возвращается как есть, без повторов. Если за maxAttempts
// свободный вариант не найден - apperrors.ErrSlugExhausted.
//
// Проверка не атомарна с последующей вставкой: два параллельных запроса с одним
// заголовком могут получить одинаковый slug. Уникальный индекс на колонке
// отсекает второй, вызывающий код может сгенерировать заново.
func (g *Generator) Generate(ctx context.Context, text string, checker Checker) (string, error) {
	base := Slugify(text)
	if base == "" {
		base = DefaultBase
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		suffix := ""
		if attempt > 1 {
			suffix = "-" + strconv.Itoa(attempt)
		}
		candidate := truncate(base, g.maxLength-len(suffix)) + suffix

		exists, err := checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", apperrors.ErrSlugExhausted.WithDetails(map[string]interface{}{
		"base":     base,
		"attempts": g.maxAttempts,
	})
}

// truncate обрезает s до n символов и снимает дефис на конце
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimRight(string([]rune(s)[:n]), "-")
}
