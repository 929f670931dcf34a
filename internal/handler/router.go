package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	empHandler  *EmployeeHandler
	deptHandler *DepartmentHandler
	production  bool
	startedAt   time.Time
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, deptHandler *DepartmentHandler, logger *slog.Logger, production bool) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		logger:      logger,
		empHandler:  empHandler,
		deptHandler: deptHandler,
		production:  production,
		startedAt:   time.Now(),
	}
}

// Setup настраивает все маршруты и цепочку middleware
func (r *Router) Setup() http.Handler {
	// Сотрудники
	r.mux.HandleFunc("POST /api/employees", r.empHandler.Create)
	r.mux.HandleFunc("GET /api/employees", r.empHandler.List)
	r.mux.HandleFunc("GET /api/employees/{id}", r.empHandler.GetByID)
	r.mux.HandleFunc("PUT /api/employees/{id}", r.empHandler.Update)
	r.mux.HandleFunc("DELETE /api/employees/{id}", r.empHandler.Delete)

	// Экспорт отчётов: литеральные сегменты имеют приоритет над {id}
	r.mux.HandleFunc("GET /api/employees/export/csv", r.empHandler.ExportCSV)
	r.mux.HandleFunc("GET /api/employees/export/pdf", r.empHandler.ExportPDF)
	r.mux.HandleFunc("GET /api/employees/export/xlsx", r.empHandler.ExportXLSX)

	// Отделы
	r.mux.HandleFunc("POST /api/departments", r.deptHandler.Create)
	r.mux.HandleFunc("GET /api/departments", r.deptHandler.List)
	r.mux.HandleFunc("GET /api/departments/{id}", r.deptHandler.GetByID)
	r.mux.HandleFunc("PUT /api/departments/{id}", r.deptHandler.Update)
	r.mux.HandleFunc("DELETE /api/departments/{id}", r.deptHandler.Delete)

	// Health check
	r.mux.HandleFunc("GET /health", r.health)

	// Все прочие пути
	r.mux.HandleFunc("/", r.notFound)

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(handler)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger, !r.production)(handler)

	return handler
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	resp := responder{logger: r.logger, production: r.production}
	resp.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Data: dto.HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(r.startedAt).Seconds(),
		},
	})
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	resp := responder{logger: r.logger, production: r.production}
	resp.respondError(w, http.StatusNotFound, "Route "+req.URL.Path+" not found", nil)
}
