// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad input")), http.StatusBadRequest, "bad input\n"},
		{"forbidden", Forbidden(errors.New("too many")), http.StatusForbidden, "too many\n"},
		{"no cause", HTTPError(nil, http.StatusNotFound), http.StatusNotFound, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.NoError(t, WriteJSON(rec, M{"amount": Amount(uint256.NewInt(255)), "zero": Amount(nil)}))

	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"amount":"0xff","zero":"0x0"}`, rec.Body.String())
}
