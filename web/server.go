// ABOUTME: Web UI server with embedded templates
// ABOUTME: Provides a read-only dashboard of clients, negotiations, and products
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/ostwick/crm/viz"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	state     *crm.State
	templates *template.Template
	generator *viz.GraphGenerator
	log       zerolog.Logger
	now       func() time.Time
}

func NewServer(state *crm.State, log zerolog.Logger) (*Server, error) {
	s := &Server{
		state:     state,
		generator: viz.NewGraphGenerator(state),
		log:       log,
		now:       time.Now,
	}

	// Labels follow the stored language preference at render time.
	funcMap := template.FuncMap{
		"money": viz.FormatMoney,
		"status": func(st models.NegotiationStatus) string {
			return s.labels().Status(st)
		},
		"appointment": func(t models.AppointmentType) string {
			return s.labels().AppointmentType(t)
		},
		"total": func(id int64) decimal.Decimal {
			return s.state.NegotiationTotal(id)
		},
		"subtotal":   crm.LineItemSubtotal,
		"clientName": s.state.ClientDisplayName,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = tmpl
	return s, nil
}

func (s *Server) labels() viz.Labels {
	return viz.LabelsFor(s.state.Preferences().Language)
}

// Handler returns the routes of the web UI.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /clients", s.handleClients)
	mux.HandleFunc("GET /clients/{id}", s.handleClientDetail)
	mux.HandleFunc("GET /negotiations", s.handleNegotiations)
	mux.HandleFunc("GET /negotiations/{id}", s.handleNegotiationDetail)
	mux.HandleFunc("GET /products", s.handleProducts)
	mux.HandleFunc("GET /graph.dot", s.handleGraph)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", "http://localhost"+addr).Msg("starting web server")

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	labels := s.labels()
	data := map[string]interface{}{
		"Title":           labels.Title,
		"Labels":          labels,
		"Stats":           viz.GenerateDashboardStats(s.state, s.now()),
		"Statuses":        models.NegotiationStatuses,
		"ContentTemplate": "dashboard-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))
	clients := s.state.FindClients(func(c models.Client) bool {
		return query == "" ||
			strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Email), query) ||
			strings.Contains(strings.ToLower(c.Document), query)
	})

	data := map[string]interface{}{
		"Title":           "Clients",
		"Clients":         clients,
		"Query":           r.URL.Query().Get("q"),
		"ContentTemplate": "clients-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleClientDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}
	client, ok := s.state.Client(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Title":           client.Name,
		"Client":          client,
		"Contacts":        s.state.ContactsFor(id),
		"Schedules":       s.state.SchedulesFor(id),
		"Negotiations":    s.state.NegotiationsFor(id),
		"ContentTemplate": "client-detail-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleNegotiations(w http.ResponseWriter, r *http.Request) {
	negotiations := s.state.Negotiations()
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, ok := models.ParseNegotiationStatus(raw)
		if !ok {
			http.Error(w, "Invalid status", http.StatusBadRequest)
			return
		}
		filtered := negotiations[:0]
		for _, n := range negotiations {
			if n.Status == st {
				filtered = append(filtered, n)
			}
		}
		negotiations = filtered
	}

	data := map[string]interface{}{
		"Title":           "Negotiations",
		"Negotiations":    negotiations,
		"ContentTemplate": "negotiations-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleNegotiationDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid negotiation ID", http.StatusBadRequest)
		return
	}
	n, ok := s.state.Negotiation(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := map[string]interface{}{
		"Title":           fmt.Sprintf("Negotiation #%d", n.ID),
		"Negotiation":     n,
		"Items":           s.state.LineItemsFor(id),
		"ContentTemplate": "negotiation-detail-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":           "Products",
		"Products":        s.state.Products(),
		"ContentTemplate": "products-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var clientID *int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid client ID", http.StatusBadRequest)
			return
		}
		clientID = &id
	}

	dot, err := s.generator.GeneratePortfolioGraph(clientID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(dot))
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	// ContentTemplate in data selects the block layout.html renders
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("template error")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
