package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/expki/go-numutil/config"
	"github.com/expki/go-numutil/logger"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ReadRequests loads a request file. Paths ending in config.COMPRESSED_SUFFIX are zstd-compressed.
func ReadRequests(path string) (requests []Request, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(errors.New("read request file"), err)
	}
	if isCompressed(path) {
		size := len(raw)
		raw, err = decompress(raw)
		if err != nil {
			return nil, errors.Join(errors.New("decompress request file"), err)
		}
		logger.Sugar().Debugf("decompressed %s: %d -> %d bytes", path, size, len(raw))
	}
	requests, err = ParseRequests(raw)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("parse %s", path), err)
	}
	return requests, nil
}

// ParseRequests accepts either a single request object or an array of them.
func ParseRequests(raw []byte) (requests []Request, err error) {
	var list config.SingleOrSlice[Request]
	err = json.Unmarshal(raw, &list)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// EncodeResponses renders responses as indented JSON or one key=value line per response.
func EncodeResponses(responses []Response, format Format) (raw []byte, err error) {
	switch format {
	case FormatJSON, "":
		raw, err = json.MarshalIndent(responses, "", "    ")
		if err != nil {
			return nil, errors.Join(errors.New("marshal responses"), err)
		}
		return append(raw, '\n'), nil
	case FormatText:
		var builder strings.Builder
		for _, response := range responses {
			line, err := FlattenResponse(response)
			if err != nil {
				return nil, err
			}
			builder.WriteString(line)
			builder.WriteByte('\n')
		}
		return []byte(builder.String()), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// WriteResponses encodes responses to w, compressing them when compressed is set.
func WriteResponses(w io.Writer, responses []Response, format Format, compressed bool) error {
	raw, err := EncodeResponses(responses, format)
	if err != nil {
		return err
	}
	if compressed {
		raw = compress(raw)
	}
	_, err = w.Write(raw)
	if err != nil {
		return errors.Join(errors.New("write responses"), err)
	}
	return nil
}

// WriteResponsesFile writes responses to path, compressing when the path ends in config.COMPRESSED_SUFFIX.
func WriteResponsesFile(path string, responses []Response, format Format) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FILE_PERMISSION)
	if err != nil {
		return errors.Join(errors.New("create response file"), err)
	}
	err = WriteResponses(file, responses, format, isCompressed(path))
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = errors.Join(errors.New("close response file"), closeErr)
	}
	return err
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, config.COMPRESSED_SUFFIX)
}
