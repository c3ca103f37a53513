package connect

import (
	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio247/internal/app/catalog"
	"github.com/osa030/radio247/internal/app/session/registry"
)

var validate = validator.New()

// validateRequest checks the validate tags of a request message.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// toConnectError maps application errors to connect error codes.
func toConnectError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrInvalidSession), errors.Is(err, catalog.ErrEpisodeNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, registry.ErrTooManySessions):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, catalog.ErrNoSources):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		zlog.Error().Err(err).Msg("internal error")
		return connect.NewError(connect.CodeInternal, err)
	}
}
