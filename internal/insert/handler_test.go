package insert

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quadix/internal/object/model"
)

type fakeIndex struct {
	objects []model.Object
	err     error
}

func (f *fakeIndex) Append(in ...model.Object) error {
	if f.err != nil {
		return f.err
	}
	f.objects = append(f.objects, in...)
	return nil
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		contentType    string
		body           string
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "positive",
			method:         "POST",
			contentType:    "application/json",
			body:           `{"data": [{"x": 10, "y": 10, "width": 5, "height": 5}, {"x": 600, "y": 600, "width": 5, "height": 5, "extra": "tag"}]}`,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "method_not_allowed",
			method:         "GET",
			contentType:    "application/json",
			body:           `{}`,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "unsupported_media_type",
			method:         "POST",
			contentType:    "text/plain",
			body:           `{}`,
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "malformed_json",
			method:         "POST",
			contentType:    "application/json",
			body:           `{"data": [`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			idx := &fakeIndex{}
			h, err := NewHandler(&Config{RequestTimeout: time.Minute}, idx)
			if err != nil {
				t.Fatalf("creating handler: %v", err)
			}

			req := httptest.NewRequest(test.method, "/objects", strings.NewReader(test.body))
			req.Header.Set("content-type", test.contentType)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != test.expectedStatus {
				t.Errorf("response status got: %v, expected: %v", w.Code, test.expectedStatus)
			}
			if len(idx.objects) != test.expectedCount {
				t.Errorf("indexed object count got: %v, expected: %v", len(idx.objects), test.expectedCount)
			}
		})
	}
}
