package railsim

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/railnet-sim/formatter"
)

const (
	formatJSON = "json"
	formatXML  = "xml"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func parseFormat(r *http.Request) (string, error) {
	f := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("format")))
	switch f {
	case "", formatJSON:
		return formatJSON, nil
	case formatXML:
		return formatXML, nil
	}
	return "", &QueryError{Msg: "Unsupported format: " + f}
}

// parseRoutes reads the routes= filter and rejects unknown route ids.
func (a *App) parseRoutes(r *http.Request) (map[string]bool, error) {
	set := formatter.ParseRouteFilter(r.URL.Query().Get("routes"))
	for id := range set {
		if _, ok := a.reg.Route(id); !ok {
			return nil, &QueryError{Msg: "No such route: " + id}
		}
	}
	return set, nil
}

// routesKey is a stable cache key fragment for a route filter.
func routesKey(set map[string]bool) string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func buildErrorPayload(format, msg string) []byte {
	if format == formatXML {
		return []byte("<ErrorCondition><Description>" + xmlText(msg) + "</Description></ErrorCondition>")
	}
	type apiErr struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	var e apiErr
	e.Error.Description = msg
	b, _ := json.Marshal(e)
	return b
}

func xmlText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func contentType(format string) string {
	if format == formatXML {
		return "application/xml"
	}
	return "application/json"
}

func writeError(w http.ResponseWriter, format string, status int, msg string) {
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(format, msg))
}

func writeBody(w http.ResponseWriter, format string, body []byte) {
	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(body)
}

// writeJSON encodes v, reporting marshal failures as 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, formatJSON, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
