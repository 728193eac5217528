package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mehedi-hridoy/creator-pulse/internal/insights"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Read decodes one document from r. See Decode for the accepted shapes.
func Read(source string, r io.Reader) (domain.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Input{}, fmt.Errorf("read %s: %w", source, err)
	}
	return Decode(source, data)
}

// Decode parses one JSON document into the canonical input. Accepted shapes:
//
//	{"platforms": {"<name>": [record, ...]}}
//	{"platform": "<name>", "items": [record, ...]}
//	[{"platform": "<name>", "items": [...]}, ...]
//	[record, ...]        platform per record, then from source, else unknown
//	native exports       YouTube, TikTok, Facebook, Instagram
//	record               a single "unknown" record
//
// Blank input decodes to an empty input. source is used for error messages
// and filename platform inference.
func Decode(source string, data []byte) (domain.Input, error) {
	in := domain.NewInput()
	if len(bytes.TrimSpace(data)) == 0 {
		return in, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return in, &InputError{Source: source, Err: fmt.Errorf("malformed JSON: %w", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return in, inputErrorf(source, "unexpected data after the JSON document")
	}

	if err := decodeDocument(in, source, doc); err != nil {
		return domain.NewInput(), err
	}
	return in, nil
}

func decodeDocument(in domain.Input, source string, doc interface{}) error {
	switch v := doc.(type) {
	case map[string]interface{}:
		return decodeObject(in, source, v)
	case []interface{}:
		return decodeArray(in, source, v)
	default:
		return &InputError{Source: source, Err: fmt.Errorf("%w: top-level %T", ErrUnsupportedShape, doc)}
	}
}

func decodeObject(in domain.Input, source string, obj map[string]interface{}) error {
	if raw, ok := obj["platforms"]; ok {
		return decodePlatforms(in, source, raw)
	}
	if name, items, ok := groupOf(obj); ok {
		records, err := recordList(source, items)
		if err != nil {
			return err
		}
		in.Add(platformOrUnknown(name), records...)
		return nil
	}
	if platform := DetectExport(obj); platform != "" {
		in.Add(platform, flattenExport(platform, obj)...)
		return nil
	}
	in.Add(PlatformUnknown, domain.RawRecord(obj))
	return nil
}

func decodeArray(in domain.Input, source string, arr []interface{}) error {
	if len(arr) == 0 {
		return nil
	}

	if allGroups(arr) {
		for _, el := range arr {
			name, items, _ := groupOf(el.(map[string]interface{}))
			records, err := recordList(source, items)
			if err != nil {
				return err
			}
			in.Add(platformOrUnknown(name), records...)
		}
		return nil
	}

	if platform := DetectExport(arr); platform != "" {
		in.Add(platform, flattenExport(platform, arr)...)
		return nil
	}

	records, err := recordList(source, arr)
	if err != nil {
		return err
	}

	// file level platform: the first record naming one, then the source name
	fallback := ""
	for _, rec := range records {
		if p, ok := rec[insights.KeyPlatform].(string); ok && normalizePlatform(p) != "" {
			fallback = normalizePlatform(p)
			break
		}
	}
	if fallback == "" {
		fallback = PlatformFromName(source)
	}

	for _, rec := range records {
		platform := fallback
		if p, ok := rec[insights.KeyPlatform].(string); ok && normalizePlatform(p) != "" {
			platform = normalizePlatform(p)
		}
		in.Add(platformOrUnknown(platform), rec)
	}
	return nil
}

func decodePlatforms(in domain.Input, source string, raw interface{}) error {
	platforms, ok := raw.(map[string]interface{})
	if !ok {
		if raw == nil {
			return nil
		}
		return inputErrorf(source, "%q must be an object, got %T", "platforms", raw)
	}
	for name, items := range platforms {
		var records []domain.RawRecord
		if items != nil {
			recs, err := recordList(source, items)
			if err != nil {
				return fmt.Errorf("platform %q: %w", name, err)
			}
			records = recs
		}
		if in.Platforms[name] == nil {
			in.Platforms[name] = []domain.RawRecord{}
		}
		in.Platforms[name] = append(in.Platforms[name], records...)
	}
	return nil
}

func recordList(source string, v interface{}) ([]domain.RawRecord, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, inputErrorf(source, "records must be a list, got %T", v)
	}
	out := make([]domain.RawRecord, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]interface{})
		if !ok {
			return nil, inputErrorf(source, "record %d must be an object, got %T", i, el)
		}
		out = append(out, domain.RawRecord(obj))
	}
	return out, nil
}

func groupOf(obj map[string]interface{}) (string, interface{}, bool) {
	name, ok := obj["platform"].(string)
	if !ok {
		return "", nil, false
	}
	items, ok := obj["items"]
	if !ok {
		return "", nil, false
	}
	return name, items, true
}

func allGroups(arr []interface{}) bool {
	for _, el := range arr {
		obj, ok := el.(map[string]interface{})
		if !ok {
			return false
		}
		if _, _, ok := groupOf(obj); !ok {
			return false
		}
	}
	return true
}

func platformOrUnknown(name string) string {
	if p := normalizePlatform(name); p != "" {
		return p
	}
	return PlatformUnknown
}
