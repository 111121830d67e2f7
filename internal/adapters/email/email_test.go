package email

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketcheckin/internal/domain"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestTemplateRenderer_CheckInConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.CheckInConfirmationEmailData{
		Email:          "grace@example.com",
		FullName:       "Grace <Guest>",
		EventTitle:     "Jazz Night",
		TicketTypeName: "VIP",
		TicketID:       "t-1",
		CheckInTime:    "May 1, 2026 19:30 UTC",
	}

	subject, html, text, err := r.Render("checkin_confirmation", data)
	require.NoError(t, err)
	assert.Equal(t, "You're in: Jazz Night", subject)
	assert.Contains(t, text, "Hi Grace <Guest>,")
	assert.Contains(t, text, "Ticket type: VIP")
	assert.Contains(t, html, "Grace &lt;Guest&gt;")
	assert.NotContains(t, html, "<Guest>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	assert.ErrorContains(t, err, "render missing")
	assert.ErrorContains(t, err, "missing_subject.txt not found")
}

func TestTemplateRenderer_MissingField(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("checkin_confirmation", struct{ Email string }{"a@b.c"})
	assert.ErrorContains(t, err, "execute checkin_confirmation_subject.txt")
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), "a@example.com", "s", "h", "t"))

	m, err = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)

	_, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "gate@example.com"}, nil)
	assert.Error(t, err, "region is required")

	m, err = NewMailer(MailerConfig{
		Provider:    "ses",
		FromAddress: "gate@example.com",
		SES:         SESConfig{Region: "eu-west-1", AccessKeyID: "id", SecretAccessKey: "secret"},
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}

func TestNewSESHTTPClient(t *testing.T) {
	for _, insecure := range []bool{false, true} {
		transport, ok := newSESHTTPClient(insecure).Transport.(*http.Transport)
		require.True(t, ok)
		assert.Equal(t, insecure, transport.TLSClientConfig.InsecureSkipVerify)
		assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	}
}

func TestSESMailer_Send(t *testing.T) {
	api := &fakeSES{}
	m := &sesMailer{client: api, fromAddress: "gate@example.com", fromName: "Gate", logger: discardLogger()}

	err := m.Send(context.Background(), "grace@example.com", "Subject", "<p>hi</p>", "")
	require.NoError(t, err)
	require.NotNil(t, api.input)
	assert.Equal(t, "Gate <gate@example.com>", aws.ToString(api.input.Source))
	assert.Equal(t, []string{"grace@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "Subject", aws.ToString(api.input.Message.Subject.Data))
	require.NotNil(t, api.input.Message.Body.Html)
	assert.Nil(t, api.input.Message.Body.Text)
}

func TestSESMailer_Send_error(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	m := &sesMailer{client: api, fromAddress: "gate@example.com", logger: discardLogger()}

	err := m.Send(context.Background(), "grace@example.com", "Subject", "", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Equal(t, "gate@example.com", aws.ToString(api.input.Source))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
