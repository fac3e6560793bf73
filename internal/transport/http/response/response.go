// Package response writes the uniform result envelope. Every operation
// answers HTTP 200; outcomes travel in the success flag and message, never in
// the status line.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/scoutlens/tracking-service/internal/domain"
)

type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	List       any    `json:"list,omitempty"`
	TotalCount *int   `json:"totalCount,omitempty"`
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a success envelope carrying a single record (or nothing).
func OK(w http.ResponseWriter, message string, data any) {
	write(w, Envelope{Success: true, Message: message, Data: data})
}

// OKList writes a success envelope carrying a collection plus the total
// matching-row count. An empty collection still marshals as [].
func OKList(w http.ResponseWriter, message string, list any, total int) {
	write(w, Envelope{Success: true, Message: message, List: list, TotalCount: &total})
}

// OKTotal writes a success envelope carrying only a count.
func OKTotal(w http.ResponseWriter, message string, total int) {
	write(w, Envelope{Success: true, Message: message, TotalCount: &total})
}

// Fail writes a failure envelope. Still HTTP 200.
func Fail(w http.ResponseWriter, message string) {
	write(w, Envelope{Success: false, Message: message})
}

// Err folds an operation error into a failure envelope. Classified errors
// surface their message; anything else stays in the logs and reports a
// generic failure.
func Err(w http.ResponseWriter, err error) {
	if err == nil {
		Fail(w, "unknown error")
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		Fail(w, failureMessage(ae))
		return
	}

	// keep details in logs only
	zlog.Error().Err(err).Msg("unhandled error")
	Fail(w, "internal error")
}

func failureMessage(ae *domain.AppError) string {
	if len(ae.Meta) == 0 {
		return ae.Message
	}
	keys := make([]string, 0, len(ae.Meta))
	for k := range ae.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return ae.Message + ": " + strings.Join(keys, ", ")
}
