package presenter

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{auth.ErrValidation("email is required"), http.StatusBadRequest},
		{job.ErrValidation("title is required"), http.StatusBadRequest},
		{application.ErrValidation("bad status"), http.StatusBadRequest},
		{auth.ErrInvalidCredentials, http.StatusBadRequest},
		{auth.ErrUnauthorized, http.StatusUnauthorized},
		{auth.ErrForbidden, http.StatusForbidden},
		{auth.ErrNotFound, http.StatusNotFound},
		{job.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("get: %w", application.ErrNotFound), http.StatusNotFound},
		{auth.ErrUserAlreadyExists, http.StatusConflict},
		{application.ErrAlreadyApplied, http.StatusConflict},
		{application.ErrAlreadyDecided, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, _ := Status(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
	}

	_, msg := Status(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal server error", msg)
}
