// Package convert implementa el cliente HTTP del servicio externo de
// conversión de unidades. Usa net/http de la librería estándar; el
// protocolo es un POST JSON simple y no requiere SDK.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/recetario-api/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa UnitConverter.
var _ ports.UnitConverter = (*Client)(nil)

// Client adaptador HTTP del puerto UnitConverter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout acota la llamada completa; el
// caso de uso puede imponer además un context.WithTimeout más corto.
// Si baseURL está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type convertRequest struct {
	BaseFood     string          `json:"base_food"`
	SourceAmount decimal.Decimal `json:"source_amount"`
	SourceUnit   string          `json:"source_unit"`
	TargetUnit   string          `json:"target_unit"`
}

type convertResponse struct {
	TargetAmount decimal.Decimal `json:"target_amount"`
	Error        *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Convert consulta la cantidad equivalente de amount fromUnit en toUnit
// para el alimento baseFood.
func (c *Client) Convert(ctx context.Context, baseFood string, amount decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	if c.baseURL == "" {
		return decimal.Zero, fmt.Errorf("convert: CONVERT_SERVICE_URL no configurado")
	}

	body, err := json.Marshal(convertRequest{
		BaseFood:     baseFood,
		SourceAmount: amount,
		SourceUnit:   fromUnit,
		TargetUnit:   toUnit,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/convert", bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return decimal.Zero, fmt.Errorf("convert: timeout o cancelación: %w", ctx.Err())
		}
		return decimal.Zero, fmt.Errorf("convert: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert: leer respuesta: %w", err)
	}

	var out convertResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &out); jsonErr == nil && out.Error != nil {
			return decimal.Zero, fmt.Errorf("convert: servicio respondió (%s): %s", out.Error.Code, out.Error.Message)
		}
		return decimal.Zero, fmt.Errorf("convert: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return decimal.Zero, fmt.Errorf("convert: deserializar respuesta: %w", err)
	}
	return out.TargetAmount, nil
}
