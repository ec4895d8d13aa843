package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/mediconnect/internal/appointment"
	"github.com/hitoshi/mediconnect/internal/middleware"
	"github.com/hitoshi/mediconnect/internal/model"
)

// AppointmentServiceInterface は予約ハンドラーが必要とするサービスインターフェース。
type AppointmentServiceInterface interface {
	Book(ctx context.Context, req appointment.BookingRequest) (*model.Appointment, error)
	List(ctx context.Context, doctor model.DoctorToken) ([]model.Appointment, error)
	Notify(ctx context.Context, doctor model.DoctorToken, appointmentID int64, message string) error
}

// AppointmentHandler は予約管理のHTTPハンドラー。
type AppointmentHandler struct {
	service AppointmentServiceInterface
}

// NewAppointmentHandler はAppointmentHandlerを生成する。
func NewAppointmentHandler(service AppointmentServiceInterface) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// bookRequest は患者からの予約リクエストのボディ。
type bookRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Symptoms string `json:"symptoms"`
	Time     string `json:"time"`
}

// notifyRequest は医師から患者への通知リクエストのボディ。
type notifyRequest struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// appointmentResponse は予約一覧のAPIレスポンス。
type appointmentResponse struct {
	ID              int64  `json:"id"`
	PatientName     string `json:"patient_name"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	Symptoms        string `json:"symptoms"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
}

// Book は患者の予約登録を処理する。
// 必須項目（name、phone、symptoms、time）の検証は境界であるこの層で行う。
// emailは省略可で、省略時は空文字列となる。
// POST /api/appointments
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if req.Name == "" || req.Phone == "" || req.Symptoms == "" || req.Time == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Missing required fields",
		})
		return
	}

	_, err := h.service.Book(r.Context(), appointment.BookingRequest{
		PatientName:     req.Name,
		PhoneNumber:     req.Phone,
		Email:           req.Email,
		Symptoms:        req.Symptoms,
		AppointmentTime: req.Time,
	})
	if err != nil {
		slog.Error("failed to book appointment", slog.String("error", err.Error()))
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}

// List は全予約をappointment_timeの昇順で返す。
// GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	doctor, err := middleware.DoctorFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	appointments, err := h.service.List(r.Context(), doctor)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			middleware.WriteUnauthorized(w)
			return
		}
		slog.Error("failed to list appointments", slog.String("error", err.Error()))
		writeInternalError(w)
		return
	}

	// 空でも空配列を返す（nullにしない）
	resp := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		resp = append(resp, appointmentResponse{
			ID:              a.ID,
			PatientName:     a.PatientName,
			PhoneNumber:     a.PhoneNumber,
			Email:           a.Email,
			Symptoms:        a.Symptoms,
			AppointmentTime: a.AppointmentTime,
			Status:          a.Status,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Notify は指定予約の患者へ医師からの個別メッセージを送信する。
// POST /api/send_notification
func (h *AppointmentHandler) Notify(w http.ResponseWriter, r *http.Request) {
	doctor, err := middleware.DoctorFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if err := h.service.Notify(r.Context(), doctor, req.ID, req.Message); err != nil {
		switch {
		case errors.Is(err, model.ErrUnauthorized):
			middleware.WriteUnauthorized(w)
		case errors.Is(err, model.ErrAppointmentNotFound):
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"error":   "Patient not found",
			})
		default:
			slog.Error("failed to send notification", slog.String("error", err.Error()))
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}
