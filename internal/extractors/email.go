package extractors

import (
	"bytes"
	"context"
	"io"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
	"github.com/stackvity/kreuzberg-go/internal/security"
)

// ExtractEmail parses an .eml message, preferring the text/plain body and
// falling back to a tag-stripped text/html body, and enumerates headers and
// attachment filenames into EmailMetadata.
func ExtractEmail(ctx context.Context, src Source, cfg *kreuzberg.ExtractionConfig) (*kreuzberg.ExtractionResult, error) {
	raw, err := readAll(src)
	if err != nil {
		return nil, err
	}

	reader, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, kreuzberg.NewParsingError("parsing email message", "message/rfc822", err)
	}

	meta := kreuzberg.EmailMetadata{}
	header := reader.Header
	if fromList, err := header.AddressList("From"); err == nil && len(fromList) > 0 {
		meta.FromEmail = kreuzberg.StringPtr(fromList[0].Address)
		if fromList[0].Name != "" {
			meta.FromName = kreuzberg.StringPtr(fromList[0].Name)
		}
	}
	meta.ToEmails = addressStrings(header, "To")
	meta.CcEmails = addressStrings(header, "Cc")
	meta.BccEmails = addressStrings(header, "Bcc")
	if subject, err := header.Subject(); err == nil && subject != "" {
		meta.Subject = kreuzberg.StringPtr(subject)
	}
	if msgID, err := header.MessageID(); err == nil && msgID != "" {
		meta.MessageID = kreuzberg.StringPtr(msgID)
	}

	var textBody, htmlBody string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, _ := io.ReadAll(part.Body)
			switch contentType {
			case "text/plain":
				textBody = string(body)
			case "text/html":
				htmlBody = string(body)
			}
		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			if filename != "" {
				meta.Attachments = append(meta.Attachments, security.SanitizeFilename(filename))
			}
		}
	}

	content := textBody
	if content == "" && htmlBody != "" {
		content = stripTagsLenient(htmlBody)
	}

	return &kreuzberg.ExtractionResult{
		Content:  NormalizeSpaces(content),
		MimeType: "message/rfc822",
		Success:  true,
		Metadata: kreuzberg.Metadata{
			Format: kreuzberg.FormatMetadata{Type: kreuzberg.FormatEmail, Email: &meta},
		},
	}, nil
}

func addressStrings(header mail.Header, field string) []string {
	addrs, err := header.AddressList(field)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Address)
	}
	return out
}

// buildEmailTextOutput joins a message's non-empty text parts with a blank
// line between them. Grounded on the original's build_email_text_output
// helper; ExtractEmail does not call it.
func buildEmailTextOutput(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
