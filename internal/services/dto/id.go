package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID - целочисленный ключ (BIGINT), который на границе API всегда
// сериализуется строкой: JS-клиенты теряют точность на числах > 2^53.
// На входе принимается и строка, и число.
type ID int64

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(id.String())), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return id.UnmarshalParam(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = ID(v)
	return nil
}

// UnmarshalParam - для gin form/query binding
func (id *ID) UnmarshalParam(param string) error {
	parsed, err := ParseID(param)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID разбирает положительный десятичный идентификатор
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(v), nil
}

// IDPtr конвертирует nullable внешний ключ модели
func IDPtr(v *int64) *ID {
	if v == nil {
		return nil
	}
	id := ID(*v)
	return &id
}

// Int64Ptr - обратная конвертация для записи в модель
func (id *ID) Int64Ptr() *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

// IDList - список ключей. В JSON принимается массив (строк или чисел)
// либо строка с JSON-массивом или значениями через запятую.
type IDList []ID

func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseIDList([]string{s})
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}
	var ids []ID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*l = dedupe(ids)
	return nil
}

func (l IDList) Int64s() []int64 {
	out := make([]int64, 0, len(l))
	for _, id := range l {
		out = append(out, int64(id))
	}
	return out
}

// ParseIDList разбирает значения формы: повторяющиеся поля, JSON-массив
// в одном поле или CSV. Пустые элементы пропускаются, дубликаты убираются.
func ParseIDList(values []string) (IDList, error) {
	var ids []ID
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "[") {
			var parsed []ID
			if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
				return nil, fmt.Errorf("invalid id list %q", raw)
			}
			ids = append(ids, parsed...)
			continue
		}
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return dedupe(ids), nil
}

func dedupe(ids []ID) IDList {
	seen := make(map[ID]struct{}, len(ids))
	out := make(IDList, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
