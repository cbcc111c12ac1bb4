package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/rubric"
	"github.com/Dosada05/hackhub/services"
	"github.com/Dosada05/hackhub/session"
	"github.com/Dosada05/hackhub/upstream"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

// sessionAuth устанавливается при сборке роутера: через него маппер
// ошибок рвёт сессию при 401 от бэкенда.
var sessionAuth *middleware.SessionAuth

func SetSessionAuth(auth *middleware.SessionAuth) {
	sessionAuth = auth
}

// pkgLogger для ошибок записи ответов; заменяется при сборке.
var pkgLogger = slog.Default()

func SetLogger(l *slog.Logger) {
	if l != nil {
		pkgLogger = l
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	err := writeJSON(w, status, env, nil)
	if err != nil {
		pkgLogger.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	pkgLogger.Error("internal error", slog.String("path", r.URL.Path), slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	env := jsonResponse{"error": message, "redirect": middleware.LoginRedirect}
	if err := writeJSON(w, http.StatusUnauthorized, env, nil); err != nil {
		pkgLogger.Error("failed to write error response", slog.Any("error", err))
	}
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", param)
	}
	return id, nil
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя и бэкенда
// в HTTP-ответы. 401 от бэкенда рвёт сессию: кука чистится и фронтенд
// получает сигнал редиректа на логин, ретраев нет.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	if upstream.IsUnauthorized(err) {
		if sessionAuth != nil {
			if sess, sessErr := middleware.GetSessionFromContext(r.Context()); sessErr == nil {
				sessionAuth.Teardown(w, sess)
			} else {
				sessionAuth.ClearSession(w)
			}
		}
		unauthorizedResponse(w, r, "session is no longer valid")
		return
	}

	switch {
	// Клиентская валидация: до сетевого вызова дело не дошло.
	case errors.Is(err, rubric.ErrIncompleteScores),
		errors.Is(err, rubric.ErrFeedbackTooShort),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrJoinCodeRequired),
		errors.Is(err, services.ErrInviteeRequired),
		errors.Is(err, services.ErrInviteBadResponse),
		errors.Is(err, services.ErrSubmissionTitleRequired),
		errors.Is(err, services.ErrReportReasonRequired),
		errors.Is(err, services.ErrProfileNameRequired),
		errors.Is(err, services.ErrNoHackathonSelected):
		badRequestResponse(w, r, err)

	// Бизнес-правила
	case errors.Is(err, services.ErrSubmissionNotEditable),
		errors.Is(err, services.ErrEvaluationLocked),
		errors.Is(err, services.ErrLeaderActionOnly):
		forbiddenResponse(w, r, err.Error())

	case errors.Is(err, session.ErrTokenExpired):
		unauthorizedResponse(w, r, err.Error())

	// Нормализованные ошибки бэкенда пробрасываются с их статусом.
	default:
		if apiErr, ok := upstream.AsAPIError(err); ok {
			switch {
			case apiErr.Status == http.StatusNotFound:
				notFoundResponse(w, r)
			case apiErr.Status == http.StatusForbidden:
				forbiddenResponse(w, r, apiErr.Message)
			case apiErr.Code == upstream.CodeNetwork:
				errorResponse(w, r, http.StatusBadGateway, "the backend is unreachable, try again")
			case apiErr.Status >= 400 && apiErr.Status < 500:
				errorResponse(w, r, apiErr.Status, apiErr.Message)
			default:
				serverErrorResponse(w, r, err)
			}
			return
		}
		serverErrorResponse(w, r, err)
	}
}
