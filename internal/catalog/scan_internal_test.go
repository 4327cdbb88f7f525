package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"
)

type staticRow struct {
	values []any
}

func (r staticRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d columns, got %d", len(r.values), len(dest))
	}
	for i, value := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			v, ok := value.(int64)
			if !ok {
				return fmt.Errorf("column %d: expected int64, got %T", i, value)
			}
			*d = v
		case *string:
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("column %d: expected string, got %T", i, value)
			}
			*d = v
		case *sql.NullString:
			if v, ok := value.(string); ok {
				*d = sql.NullString{String: v, Valid: true}
			} else {
				*d = sql.NullString{}
			}
		case *sql.NullFloat64:
			if v, ok := value.(float64); ok {
				*d = sql.NullFloat64{Float64: v, Valid: true}
			} else {
				*d = sql.NullFloat64{}
			}
		default:
			return fmt.Errorf("column %d: unsupported dest %T", i, dest[i])
		}
	}
	return nil
}

func rowValues(created, updated string) []any {
	return []any{
		int64(7),           // id
		"ext-7",            // external_id
		"https://e.com/v",  // url
		"Title",            // title
		string(KindVideo),  // kind
		"pending",          // status
		"/tmp/local.mkv",   // local_path
		nil,                // final_path
		12.5,               // duration_seconds
		nil,                // error_message
		created,            // created_at
		updated,            // updated_at
	}
}

func TestScanResourceParsesTimestamps(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	stamp := now.Format(time.RFC3339Nano)

	resource, err := scanResource(staticRow{values: rowValues(stamp, stamp)})
	if err != nil {
		t.Fatalf("scanResource failed: %v", err)
	}
	if !resource.CreatedAt.Equal(now) || !resource.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not parsed: %#v", resource)
	}
	if resource.DurationSeconds != 12.5 || resource.Kind != KindVideo {
		t.Fatalf("unexpected resource: %#v", resource)
	}
}

func TestScanResourceRejectsMalformedTimestamp(t *testing.T) {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := scanResource(staticRow{values: rowValues("not-a-time", stamp)})
	if err == nil || !strings.Contains(err.Error(), "created_at") {
		t.Fatalf("expected created_at parse error, got %v", err)
	}

	_, err = scanResource(staticRow{values: rowValues(stamp, "")})
	if err == nil || !strings.Contains(err.Error(), "updated_at") {
		t.Fatalf("expected updated_at parse error, got %v", err)
	}
}
