// Package concierge generates personalized booking confirmation messages
// through the Gemini API, falling back to canned Spanish messages when the
// API is unconfigured or unreachable.
package concierge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/erazemk/albergue/internal/catalog"
	"github.com/erazemk/albergue/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	modelName      = "gemini-2.5-flash"
)

// Confirmation is the creative confirmation returned to the booking wizard.
type Confirmation struct {
	GroupStayName       string `json:"groupStayName"`
	ConfirmationMessage string `json:"confirmationMessage"`
}

// Client talks to the Gemini API behind a circuit breaker. A Client with an
// empty API key is valid and always answers with the offline fallback.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	apiKey  string
	logger  *slog.Logger
}

// New returns a concierge client. apiKey may be empty, in which case the
// API is never called.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(15 * time.Second).
			SetRetryCount(0),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "gemini",
			MaxRequests: 3,
			Interval:    15 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					"circuit", name, "from", from.String(), "to", to.String())
			},
		}),
		apiKey: apiKey,
		logger: logger,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

// Confirm generates the confirmation for a booking. It never returns an
// error: any failure degrades to a canned message so a booking is never
// blocked on the external service.
func (c *Client) Confirm(ctx context.Context, b model.Booking, selection map[string]int) Confirmation {
	if c.apiKey == "" {
		return Confirmation{
			GroupStayName: "La Aventura del Viajero",
			ConfirmationMessage: fmt.Sprintf("¡Hola %s! Tu grupo está listo para una estancia inolvidable. "+
				"Hemos preparado todo para que vuestra experiencia sea cómoda y emocionante. ¡Nos vemos pronto!",
				b.GuestName),
		}
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.generate(ctx, b, selection)
	})
	if err != nil {
		c.logger.Warn("falling back to canned confirmation", "error", err)
		return Confirmation{
			GroupStayName: "Estancia Fantástica",
			ConfirmationMessage: fmt.Sprintf("¡Confirmado, %s! La reserva de tu grupo ha sido un éxito. "+
				"Estamos encantados de darles la bienvenida y asegurarles una estancia maravillosa.",
				b.GuestName),
		}
	}
	return result.(Confirmation)
}

type promptPart struct {
	Text string `json:"text"`
}

type promptContent struct {
	Parts []promptPart `json:"parts"`
}

type generateRequest struct {
	Contents         []promptContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content promptContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, b model.Booking, selection map[string]int) (Confirmation, error) {
	req := generateRequest{
		Contents: []promptContent{{
			Parts: []promptPart{{Text: buildPrompt(b, selection)}},
		}},
	}
	req.GenerationConfig.ResponseMimeType = "application/json"

	var response generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&response).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", modelName))
	if err != nil {
		return Confirmation{}, fmt.Errorf("calling gemini: %w", err)
	}
	if resp.IsError() {
		return Confirmation{}, fmt.Errorf("gemini returned %s", resp.Status())
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return Confirmation{}, fmt.Errorf("gemini returned no candidates")
	}

	var confirmation Confirmation
	text := strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), &confirmation); err != nil {
		return Confirmation{}, fmt.Errorf("decoding gemini response: %w", err)
	}
	if confirmation.GroupStayName == "" || confirmation.ConfirmationMessage == "" {
		return Confirmation{}, fmt.Errorf("gemini response missing fields")
	}
	return confirmation, nil
}

func buildPrompt(b model.Booking, selection map[string]int) string {
	var rooms, guests int
	var parts []string
	for _, typeID := range sortedKeys(selection) {
		count := selection[typeID]
		if count <= 0 {
			continue
		}
		name := "Habitación Desconocida"
		if item, ok := catalog.Lookup(typeID); ok {
			name = item.Name
			if item.Kind == catalog.KindRoom {
				rooms += count
				guests += count * item.Capacity
			}
		}
		parts = append(parts, fmt.Sprintf("%d x %s", count, name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Actúa como un conserje de hotel creativo. "+
		"Genera un breve y acogedor mensaje de confirmación para una reserva de grupo a nombre de %s.\n", b.GuestName)
	fmt.Fprintf(&sb, "La reserva es para %d personas en %d habitaciones, desde el %s hasta el %s.\n",
		guests, rooms, b.CheckIn, b.CheckOut)
	fmt.Fprintf(&sb, "Las habitaciones seleccionadas son: %s.", strings.Join(parts, ", "))

	if dining := diningSummary(b.Dining); dining != "" {
		sb.WriteString("\nTambién han solicitado los siguientes servicios de comedor:\n")
		sb.WriteString(dining)
	}
	if b.Observations != "" {
		fmt.Fprintf(&sb, "\nEl cliente ha dejado las siguientes observaciones: %q. "+
			"Ten esto en cuenta para el tono del mensaje.", b.Observations)
	}

	sb.WriteString("\nIncluye un nombre creativo y divertido para la estancia de su grupo.\n" +
		`La respuesta debe estar en formato JSON con dos claves: "groupStayName" y "confirmationMessage".` + "\n" +
		"Mantén el mensaje cálido, emocionante y personalizado.")
	return sb.String()
}

func diningSummary(dining model.DiningMap) string {
	var lines []string
	for _, date := range sortedDiningDates(dining) {
		selection := dining[date]
		var daily []string
		for _, option := range catalog.MealOptions {
			if count := selection.Count(option.ID); count > 0 {
				daily = append(daily, fmt.Sprintf("%d %s", count, option.Label))
			}
		}
		if len(daily) > 0 {
			lines = append(lines, fmt.Sprintf("El %s: %s.", date, strings.Join(daily, ", ")))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedDiningDates(m model.DiningMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
