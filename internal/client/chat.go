package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/hormonya/hormonya/internal/handler/dto"
)

// File is an attachment sent with a chat question.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Chat calls POST /api/chat as multipart/form-data. file may be nil.
func (c *Client) Chat(ctx context.Context, message string, file *File) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("message", message); err != nil {
		return "", fmt.Errorf("write message field: %w", err)
	}
	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="receipt"; filename="%s"`, escapeQuotes(file.Name)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(file.Data)
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return "", fmt.Errorf("write file part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/chat", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}

	var resp dto.ChatResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
