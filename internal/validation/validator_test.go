// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package validation

import (
	"strings"
	"sync"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	var wg sync.WaitGroup
	seen := make(chan interface{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- GetValidator()
		}()
	}
	wg.Wait()
	close(seen)

	first := GetValidator()
	for v := range seen {
		if v != first {
			t.Fatal("GetValidator() returned different instances")
		}
	}
}

type searchArgs struct {
	Query  string `json:"query" validate:"notblank,max=200"`
	Year   int    `json:"year" validate:"omitempty,year"`
	Window string `json:"time_window" validate:"omitempty,oneof=day week"`
	ID     *int   `json:"movie_id" validate:"omitempty,min=1"`
}

func intPtr(v int) *int { return &v }

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		args      searchArgs
		wantField string
		wantMsg   string
	}{
		{name: "valid", args: searchArgs{Query: "alien", Year: 1979, Window: "week", ID: intPtr(348)}},
		{name: "blank query", args: searchArgs{Query: "   "}, wantField: "query", wantMsg: "query is required"},
		{name: "year too old", args: searchArgs{Query: "x", Year: 1200}, wantField: "year", wantMsg: "year must be a year between 1874 and 2100"},
		{name: "bad window", args: searchArgs{Query: "x", Window: "month"}, wantField: "time_window", wantMsg: "time_window must be one of: day week"},
		{name: "zero id", args: searchArgs{Query: "x", ID: intPtr(0)}, wantField: "movie_id", wantMsg: "movie_id must be at least 1"},
		{name: "long query", args: searchArgs{Query: strings.Repeat("a", 201)}, wantField: "query", wantMsg: "query must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.args)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("Errors() = %d, want 1", len(errs))
			}
			if errs[0].Field() != tt.wantField || errs[0].Error() != tt.wantMsg {
				t.Errorf("error = (%s, %q), want (%s, %q)", errs[0].Field(), errs[0].Error(), tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&searchArgs{Query: ""})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %s, want %s", apiErr.Code, ErrorCode)
	}
	if apiErr.Details["field"] != "query" || apiErr.Details["tag"] != "notblank" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&searchArgs{Query: "", Year: 3000})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "query: query is required") || !strings.Contains(apiErr.Message, "year: ") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v", apiErr.Details["fields"])
	}
}

func TestEmptyRequestValidationError(t *testing.T) {
	var ve RequestValidationError
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Code != ErrorCode {
		t.Error("empty error should still carry the validation code")
	}
}
