package executor

import (
	"bufio"
	"io"
	"strings"
)

// DecodeKeyValue decodes esxcli --formatter=keyvalue output. Each line has the form
// Struct.Field.type=value; list types (type[]) carry comma-separated values. A blank line or a field
// that repeats within the current record starts a new record.
func DecodeKeyValue(r io.Reader) ([]Record, error) {
	var (
		records []Record
		current Record
	)
	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		field, list := parseKeyValueKey(key)
		if field == "" {
			continue
		}
		if current == nil {
			current = Record{}
		} else if _, seen := current[field]; seen {
			flush()
			current = Record{}
		}
		if list {
			current[field] = splitList(value)
		} else {
			current[field] = []string{value}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return records, nil
}

// parseKeyValueKey extracts the field name from Struct.Field.type and reports whether it is a list.
func parseKeyValueKey(key string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(key), ".")
	switch len(parts) {
	case 0:
		return "", false
	case 1:
		return parts[0], false
	case 2:
		return parts[0], strings.HasSuffix(parts[1], "[]")
	default:
		return parts[len(parts)-2], strings.HasSuffix(parts[len(parts)-1], "[]")
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
