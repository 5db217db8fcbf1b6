package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FlattenResponse renders a response as a single line of space separated key=value pairs.
func FlattenResponse(response Response) (string, error) {
	raw, err := json.Marshal(response)
	if err != nil {
		return "", errors.Join(errors.New("marshal response"), err)
	}
	var data map[string]any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	err = decoder.Decode(&data)
	if err != nil {
		return "", errors.Join(errors.New("unmarshal response"), err)
	}
	return FlattenMap(data), nil
}

func FlattenMap(data map[string]any) string {
	var result strings.Builder
	flatten("", data, &result)
	return result.String()
}

func flatten(prefix string, data any, result *strings.Builder) {
	switch v := data.(type) {
	case map[string]any:
		// Sort the keys alphabetically
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			flatten(join(prefix, key), v[key], result)
		}
	case []any:
		for idx, item := range v {
			flatten(join(prefix, strconv.Itoa(idx)), item, result)
		}
	default:
		if prefix != "" {
			if result.Len() > 0 {
				result.WriteRune(' ')
			}
			result.WriteString(fmt.Sprintf("%s=%v", prefix, format(v)))
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func format(data any) any {
	switch value := data.(type) {
	case string:
		return strconv.Quote(value)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return data
	}
}
