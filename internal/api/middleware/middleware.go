package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error  string   `json:"error" description:"Error message"`
	Code   int      `json:"code" description:"HTTP status code"`
	Fields []string `json:"fields,omitempty" description:"Offending input fields"`
}

// Logger logs one line per request once the chain has run.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")
}

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Str("path", req.Request.URL.Path).
				Msg("Recovered from panic")
			HandleError(resp, errors.New("internal server error"), http.StatusInternalServerError)
		}
	}()
	chain.ProcessFilter(req, resp)
}

// HandleError writes an ErrorResponse. Invalid input errors carry their
// field list.
func HandleError(resp *restful.Response, err error, status int) {
	body := ErrorResponse{
		Error: err.Error(),
		Code:  status,
	}

	var invalid *models.InvalidInputError
	if errors.As(err, &invalid) {
		body.Fields = invalid.Fields
	}

	if writeErr := resp.WriteHeaderAndEntity(status, body); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
