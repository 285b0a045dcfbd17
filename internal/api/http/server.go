package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dayflowhq/dayflow/internal/controllers"
	"github.com/dayflowhq/dayflow/internal/entity"
)

type Server struct {
	deps        *controllers.Dependens
	Controllers *controllers.Controllers
}

func NewServer(deps *controllers.Dependens) *Server {
	return &Server{
		deps:        deps,
		Controllers: controllers.NewControllers(deps),
	}
}

// RegisterRoutes mounts the API surface on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/logout", s.Logout)

		r.Get("/employees", s.GetEmployees)
		r.Get("/employees/{id}", s.GetEmployeeByID)
		r.Put("/employees/{id}", s.UpdateEmployee)
		r.Delete("/employees/{id}", s.DeleteEmployee)

		r.Post("/attendance/checkin", s.CheckIn)
		r.Post("/attendance/checkout", s.CheckOut)
		r.Get("/attendance", s.GetAttendance)

		r.Post("/leaves", s.ApplyLeave)
		r.Get("/leaves", s.GetLeaves)
		r.Put("/leaves/{id}", s.ReviewLeave)

		r.Get("/salary/{employeeId}", s.GetSalary)
		r.Get("/salaries", s.GetAllSalaries)
		r.Post("/salary", s.UpsertSalary)

		r.Get("/stats/admin", s.AdminStats)
		r.Get("/stats/employee", s.EmployeeStats)
	})
}

func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	s.httpResponse(w, http.StatusOK, map[string]string{
		"message": "Dayflow HRMS API",
		"version": "1.0.0",
		"status":  "running",
	}, "success")
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	s.httpResponse(w, http.StatusOK, map[string]string{"status": "healthy"}, "success")
}

// Register creates a user account. Open endpoint: the role is
// self-assigned and defaults to employee.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return
	}

	user, err := s.Controllers.AuthController.Register(r.Context(), &req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, user, "success")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return
	}

	token, user, err := s.Controllers.AuthController.AuthLogin(r.Context(), &req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, entity.LoginResponse{Token: token, User: *user}, "success")
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := s.getUserFromToken(r); err != nil {
		s.httpError(w, err)
		return
	}

	if err := s.Controllers.AuthController.Logout(r.Context(), r.Header.Get("Authorization")); err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, map[string]string{"message": "Logged out successfully"}, "success")
}

// GetEmployees lists all users, admin only, optionally filtered by
// department.
func (s *Server) GetEmployees(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}
	if !controllers.CanAdminister(claims) {
		s.forbidden(w)
		return
	}

	var department *string
	if d := r.URL.Query().Get("department"); d != "" {
		department = &d
	}

	employees, err := s.Controllers.EmployeeController.GetEmployees(r.Context(), department)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, employees, "success")
}

func (s *Server) GetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	if !controllers.CanViewOrEdit(claims, employeeID) {
		s.forbidden(w)
		return
	}

	user, err := s.Controllers.EmployeeController.GetEmployeeByID(r.Context(), employeeID)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, user, "success")
}

func (s *Server) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	if !controllers.CanViewOrEdit(claims, employeeID) {
		s.forbidden(w)
		return
	}

	var req entity.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return
	}

	user, err := s.Controllers.EmployeeController.UpdateEmployee(r.Context(), employeeID, claims.Role, req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, user, "success")
}

func (s *Server) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}
	if !controllers.CanAdminister(claims) {
		s.forbidden(w)
		return
	}

	if err := s.Controllers.EmployeeController.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"}, "success")
}

func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	resp, err := s.Controllers.AttendanceController.CheckIn(r.Context(), claims.UserID, time.Now())
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, resp, "success")
}

func (s *Server) CheckOut(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	resp, err := s.Controllers.AttendanceController.CheckOut(r.Context(), claims.UserID, time.Now())
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, resp, "success")
}

// GetAttendance returns the caller's records; an admin may pass
// ?employee_id= to read someone else's.
func (s *Server) GetAttendance(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	employeeID := claims.UserID
	if filter := r.URL.Query().Get("employee_id"); filter != "" && controllers.CanAdminister(claims) {
		employeeID = filter
	}

	records, err := s.Controllers.AttendanceController.GetAttendance(r.Context(), employeeID)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, records, "success")
}

func (s *Server) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	var req entity.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return
	}

	// The employee name is snapshotted onto the request at submission.
	user, err := s.Controllers.EmployeeController.GetEmployeeByID(r.Context(), claims.UserID)
	if err != nil {
		s.httpError(w, err)
		return
	}

	leave, err := s.Controllers.LeaveController.ApplyLeave(r.Context(), claims.UserID, user.Name, &req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, leave, "success")
}

func (s *Server) GetLeaves(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	var filter *string
	if f := r.URL.Query().Get("employee_id"); f != "" {
		filter = &f
	}

	leaves, err := s.Controllers.LeaveController.GetLeaves(r.Context(), claims, filter)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, leaves, "success")
}

func (s *Server) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}
	if !controllers.CanAdminister(claims) {
		s.forbidden(w)
		return
	}

	var req entity.ReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return
	}

	leave, err := s.Controllers.LeaveController.ReviewLeave(r.Context(), chi.URLParam(r, "id"), claims.UserID, &req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, leave, "success")
}

func (s *Server) GetSalary(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	if !controllers.CanViewOrEdit(claims, employeeID) {
		s.forbidden(w)
		return
	}

	salary, err := s.Controllers.SalaryController.GetByEmployeeID(r.Context(), employeeID)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, salary, "success")
}

func (s *Server) GetAllSalaries(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}
	if !controllers.CanAdminister(claims) {
		s.forbidden(w)
		return
	}

	salaries, err := s.Controllers.SalaryController.GetAll(r.Context())
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, salaries, "success")
}

func (s *Server) UpsertSalary(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}
	if !controllers.CanAdminister(claims) {
		s.forbidden(w)
		return
	}

	var req entity.UpsertSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.deps.Logger.Error("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return
	}

	salary, err := s.Controllers.SalaryController.Upsert(r.Context(), &req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, salary, "success")
}

func (s *Server) AdminStats(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}
	if !controllers.CanAdminister(claims) {
		s.forbidden(w)
		return
	}

	stats, err := s.Controllers.StatsController.AdminStats(r.Context(), time.Now())
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, stats, "success")
}

func (s *Server) EmployeeStats(w http.ResponseWriter, r *http.Request) {
	claims, err := s.getUserFromToken(r)
	if err != nil {
		s.httpError(w, err)
		return
	}

	stats, err := s.Controllers.StatsController.EmployeeStats(r.Context(), claims.UserID, time.Now())
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, stats, "success")
}

func (s *Server) getUserFromToken(r *http.Request) (*entity.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, controllers.ErrUnauthorized
	}

	claims, err := s.Controllers.AuthController.CheckUserToken(r.Context(), authHeader)
	if err != nil {
		s.deps.Logger.Warn("Error checking token", slog.String("error", err.Error()))
		return nil, err
	}

	return claims, nil
}

func (s *Server) forbidden(w http.ResponseWriter) {
	s.httpResponse(w, http.StatusForbidden, map[string]string{"error": "Access denied"}, "error")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, controllers.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, controllers.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, controllers.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, controllers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controllers.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, controllers.ErrInvalidState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) httpError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}

	s.httpResponse(w, status, map[string]string{"error": msg}, "error")
}

func (s *Server) httpResponse(w http.ResponseWriter, status int, data any, respType string) {
	resp := map[string]any{
		"status": status,
		"type":   respType,
		"data":   data,
	}

	respData, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		s.deps.Logger.Error("Error marshaling response", slog.String("error", marshalErr.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(respData); err != nil {
		s.deps.Logger.Error("Error writing response", slog.String("error", err.Error()))
	}
}
