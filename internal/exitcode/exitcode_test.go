package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reftrack/refadmin/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"auth code", errors.New(errors.ErrCodeAuthRequired, "not logged in"), AuthError},
		{"forbidden code", errors.New(errors.ErrCodeAuthForbidden, "nope"), AuthError},
		{"transport code", errors.New(errors.ErrCodeAPITransport, "request failed"), NetworkError},
		{"config code", errors.New(errors.ErrCodeConfigInvalid, "bad url"), UsageError},
		{"api status code", errors.New(errors.ErrCodeAPIStatus, "500"), GeneralError},
		{"plain unauthorized", stderrors.New("server said Unauthorized"), AuthError},
		{"plain connection refused", stderrors.New("dial tcp: connection refused"), NetworkError},
		{"plain missing flag", stderrors.New("--email is required"), UsageError},
		{"plain other", stderrors.New("boom"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}
