package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

const imageListSeparator = ";"

// ImageList is an ordered list of image URLs. The store keeps it as one
// semicolon-joined column.
type ImageList []string

func ParseImageList(s string) ImageList {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, imageListSeparator)
	out := make(ImageList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (l ImageList) String() string {
	return strings.Join(l, imageListSeparator)
}

// Value stores an empty list as NULL.
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return l.String(), nil
}

func (l *ImageList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
	case string:
		*l = ParseImageList(v)
	case []byte:
		*l = ParseImageList(string(v))
	default:
		return fmt.Errorf("image list: unsupported source type %T", src)
	}
	return nil
}

// MarshalJSON always emits an array, never null.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts either an array of URLs or the semicolon-joined string form.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*l = ParseImageList(joined)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("image list: expected array or string: %w", err)
	}
	*l = ParseImageList(strings.Join(list, imageListSeparator))
	return nil
}
