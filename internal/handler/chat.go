package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/hormonya/hormonya/internal/chat"
	"github.com/hormonya/hormonya/internal/handler/dto"
	"github.com/hormonya/hormonya/internal/middleware"
)

// attachmentFields are the multipart fields an attachment may arrive in, in
// lookup order.
var attachmentFields = []string{"receipt", "file"}

// ChatHandler proxies questions to the chat service.
type ChatHandler struct {
	svc       *chat.Service
	maxUpload int64
	logger    *slog.Logger
}

// NewChatHandler creates a new ChatHandler. maxUpload bounds the whole
// multipart request.
func NewChatHandler(svc *chat.Service, maxUpload int64, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		svc:       svc,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Chat handles POST /api/chat. The body is multipart/form-data with a
// "message" field and an optional file, or a JSON {"message": ...}.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	// Demo mode answers every request, well-formed or not.
	if h.svc.DemoMode() {
		reply, _ := h.svc.Reply(r.Context(), "", nil)
		writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: reply})
		return
	}

	message, attachment, status, errMsg := h.readRequest(w, r)
	if status != 0 {
		writeJSON(w, status, dto.ChatErrorResponse{Error: errMsg})
		return
	}

	if err := middleware.ValidateChatMessage(message); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ChatErrorResponse{Error: "Message is too long."})
		return
	}

	reply, err := h.svc.Reply(r.Context(), message, attachment)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyRequest) {
			writeJSON(w, http.StatusBadRequest, dto.ChatErrorResponse{Error: "Message or file is required."})
			return
		}
		h.logger.Error("chat_generation_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ChatErrorResponse{Error: "Failed to generate AI response."})
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: reply})
}

// readRequest extracts the message and attachment. A non-zero status means
// the request was rejected with errMsg.
func (h *ChatHandler) readRequest(w http.ResponseWriter, r *http.Request) (message string, attachment *chat.Attachment, status int, errMsg string) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			if isTooLarge(err) {
				return "", nil, http.StatusRequestEntityTooLarge, "Upload too large."
			}
			return "", nil, http.StatusBadRequest, "Invalid request body."
		}
		return body.Message, nil, 0, ""

	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			if isTooLarge(err) {
				return "", nil, http.StatusRequestEntityTooLarge, "Upload too large."
			}
			return "", nil, http.StatusBadRequest, "Invalid multipart form."
		}
		defer r.MultipartForm.RemoveAll()

		message = r.FormValue("message")
		for _, field := range attachmentFields {
			file, header, err := r.FormFile(field)
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			if err != nil {
				return "", nil, http.StatusBadRequest, "Invalid file upload."
			}
			attachment, err = readAttachment(file, header)
			file.Close()
			if err != nil {
				return "", nil, http.StatusBadRequest, "Unsupported file type."
			}
			break
		}
		return message, attachment, 0, ""

	default:
		// Urlencoded forms and bodiless requests.
		if err := r.ParseForm(); err != nil {
			if isTooLarge(err) {
				return "", nil, http.StatusRequestEntityTooLarge, "Upload too large."
			}
			return "", nil, http.StatusBadRequest, "Invalid request body."
		}
		return r.PostFormValue("message"), nil, 0, ""
	}
}

func readAttachment(file multipart.File, header *multipart.FileHeader) (*chat.Attachment, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	declared := header.Header.Get("Content-Type")
	if declared == "" || declared == "application/octet-stream" {
		declared = http.DetectContentType(data)
	}
	mimeType, err := middleware.ValidateAttachmentType(declared)
	if err != nil {
		return nil, err
	}

	return &chat.Attachment{
		Filename: header.Filename,
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
