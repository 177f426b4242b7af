package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/auth"
	"speed-trivia-service/internal/blob"
	"speed-trivia-service/internal/domain"
)

// maxUploadBytes caps skin images at 5 MiB.
const maxUploadBytes = 5 << 20

// CacheInvalidator drops a quiz's cached entries after admin writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, quizID string)
}

// AdminHandler is the REST surface behind the admin console: login, quiz
// skin CRUD, question CRUD and image uploads. Every route except login sits
// behind the bearer-token middleware.
type AdminHandler struct {
	store    app.AdminStore
	auth     *auth.Authenticator
	blobs    blob.Store
	cache    CacheInvalidator
	validate *validator.Validate
}

func NewAdminHandler(store app.AdminStore, authn *auth.Authenticator, blobs blob.Store, cache CacheInvalidator) *AdminHandler {
	return &AdminHandler{
		store:    store,
		auth:     authn,
		blobs:    blobs,
		cache:    cache,
		validate: validator.New(),
	}
}

// Register mounts the admin routes on mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/api/login", h.login)

	mux.Handle("GET /admin/api/quizzes", h.requireAuth(h.listQuizzes))
	mux.Handle("POST /admin/api/quizzes", h.requireAuth(h.createQuiz))
	mux.Handle("GET /admin/api/quizzes/{id}", h.requireAuth(h.getQuiz))
	mux.Handle("PUT /admin/api/quizzes/{id}", h.requireAuth(h.updateQuiz))
	mux.Handle("DELETE /admin/api/quizzes/{id}", h.requireAuth(h.deleteQuiz))

	mux.Handle("GET /admin/api/quizzes/{id}/questions", h.requireAuth(h.listQuestions))
	mux.Handle("POST /admin/api/quizzes/{id}/questions", h.requireAuth(h.createQuestion))
	mux.Handle("PUT /admin/api/quizzes/{id}/questions/{qid}", h.requireAuth(h.updateQuestion))
	mux.Handle("DELETE /admin/api/quizzes/{id}/questions/{qid}", h.requireAuth(h.deleteQuestion))

	mux.Handle("POST /admin/api/uploads", h.requireAuth(h.upload))
	mux.Handle("DELETE /admin/api/uploads", h.requireAuth(h.deleteUpload))
}

// requireAuth rejects requests without a valid bearer token.
func (h *AdminHandler) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := h.auth.Subject(token); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next(w, r)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	token, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.internalError(w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type quizPayload struct {
	Title                         string `json:"title" validate:"required,max=200"`
	BackgroundImagePath           string `json:"background_image_path"`
	GradientColor1                string `json:"gradient_color_1" validate:"omitempty,hexcolor"`
	GradientColor2                string `json:"gradient_color_2" validate:"omitempty,hexcolor"`
	LogoPath                      string `json:"logo_path"`
	ButtonColorArabic             string `json:"button_color_arabic" validate:"omitempty,hexcolor"`
	ButtonColorEnglish            string `json:"button_color_english" validate:"omitempty,hexcolor"`
	ScoreboardBackgroundImagePath string `json:"scoreboard_background_image_path"`
	ScoreboardGradientColor1      string `json:"scoreboard_gradient_color_1" validate:"omitempty,hexcolor"`
	ScoreboardGradientColor2      string `json:"scoreboard_gradient_color_2" validate:"omitempty,hexcolor"`
}

func (p quizPayload) record(id string) domain.QuizRecord {
	return domain.QuizRecord{
		ID:                            id,
		Title:                         p.Title,
		BackgroundImagePath:           p.BackgroundImagePath,
		GradientColor1:                p.GradientColor1,
		GradientColor2:                p.GradientColor2,
		LogoPath:                      p.LogoPath,
		ButtonColorArabic:             p.ButtonColorArabic,
		ButtonColorEnglish:            p.ButtonColorEnglish,
		ScoreboardBackgroundImagePath: p.ScoreboardBackgroundImagePath,
		ScoreboardGradientColor1:      p.ScoreboardGradientColor1,
		ScoreboardGradientColor2:      p.ScoreboardGradientColor2,
	}
}

func (h *AdminHandler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.store.ListQuizzes(r.Context())
	if err != nil {
		h.internalError(w, "list quizzes", err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *AdminHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, "get quiz", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *AdminHandler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var payload quizPayload
	if !h.decode(w, r, &payload) {
		return
	}
	rec, err := h.store.CreateQuiz(r.Context(), payload.record(uuid.NewString()))
	if err != nil {
		h.internalError(w, "create quiz", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *AdminHandler) updateQuiz(w http.ResponseWriter, r *http.Request) {
	var payload quizPayload
	if !h.decode(w, r, &payload) {
		return
	}
	quizID := r.PathValue("id")
	rec, err := h.store.UpdateQuiz(r.Context(), payload.record(quizID))
	if err != nil {
		h.storeError(w, "update quiz", err)
		return
	}
	h.invalidate(r.Context(), quizID)
	writeJSON(w, http.StatusOK, rec)
}

func (h *AdminHandler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("id")
	if err := h.store.DeleteQuiz(r.Context(), quizID); err != nil {
		h.storeError(w, "delete quiz", err)
		return
	}
	h.invalidate(r.Context(), quizID)
	w.WriteHeader(http.StatusNoContent)
}

type questionPayload struct {
	PromptEN      string   `json:"prompt_en" validate:"required"`
	PromptAR      string   `json:"prompt_ar" validate:"required"`
	OptionsEN     []string `json:"options_en" validate:"len=4,dive,required"`
	OptionsAR     []string `json:"options_ar" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correct_answer" validate:"min=0,max=3"`
}

func (p questionPayload) question(id int) domain.Question {
	return domain.Question{
		ID:            id,
		Prompt:        domain.LocalizedText{EN: p.PromptEN, AR: p.PromptAR},
		Options:       domain.LocalizedOptions{EN: p.OptionsEN, AR: p.OptionsAR},
		CorrectAnswer: p.CorrectAnswer,
	}
}

func (h *AdminHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.ListQuestions(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, "list questions", err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *AdminHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var payload questionPayload
	if !h.decode(w, r, &payload) {
		return
	}
	quizID := r.PathValue("id")
	q, err := h.store.CreateQuestion(r.Context(), quizID, payload.question(0))
	if err != nil {
		h.storeError(w, "create question", err)
		return
	}
	h.invalidate(r.Context(), quizID)
	writeJSON(w, http.StatusCreated, q)
}

func (h *AdminHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var payload questionPayload
	if !h.decode(w, r, &payload) {
		return
	}
	questionID, err := strconv.Atoi(r.PathValue("qid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}
	quizID := r.PathValue("id")
	q, err := h.store.UpdateQuestion(r.Context(), quizID, payload.question(questionID))
	if err != nil {
		h.storeError(w, "update question", err)
		return
	}
	h.invalidate(r.Context(), quizID)
	writeJSON(w, http.StatusOK, q)
}

func (h *AdminHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("qid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}
	quizID := r.PathValue("id")
	if err := h.store.DeleteQuestion(r.Context(), quizID, questionID); err != nil {
		h.storeError(w, "delete question", err)
		return
	}
	h.invalidate(r.Context(), quizID)
	w.WriteHeader(http.StatusNoContent)
}

// upload accepts one multipart image and stores it under a fresh name,
// keeping the client-supplied extension.
func (h *AdminHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	bucket := r.FormValue("bucket")
	if bucket != blob.BucketBackgrounds && bucket != blob.BucketLogos {
		writeError(w, http.StatusBadRequest, "unknown bucket")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	name := uuid.NewString() + strings.ToLower(path.Ext(header.Filename))
	url, err := h.blobs.Upload(r.Context(), bucket, name, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.internalError(w, "upload", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": name, "url": url})
}

func (h *AdminHandler) deleteUpload(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	blobPath := r.URL.Query().Get("path")
	if bucket == "" || blobPath == "" {
		writeError(w, http.StatusBadRequest, "missing bucket or path")
		return
	}
	if err := h.blobs.Delete(r.Context(), bucket, blob.StripBucket(bucket, blobPath)); err != nil {
		h.internalError(w, "delete upload", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads and validates a JSON body, replying itself on failure.
func (h *AdminHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func (h *AdminHandler) invalidate(ctx context.Context, quizID string) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, quizID)
	}
}

func (h *AdminHandler) storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		writeError(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "question not found")
	default:
		h.internalError(w, op, err)
	}
}

func (h *AdminHandler) internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("admin %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
