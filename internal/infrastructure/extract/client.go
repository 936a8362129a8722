// Package extract implementa el cliente HTTP del servicio externo de
// extracción de recetas desde una URL pública.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa RecipeExtractor.
var _ ports.RecipeExtractor = (*Client)(nil)

// Client adaptador HTTP del puerto RecipeExtractor.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. La extracción descarga y parsea la
// página remota, así que el timeout suele ser mayor que el de conversión.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	dto.ExtractedRecipe
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Extract pide al servicio la receta estructurada de la URL dada.
func (c *Client) Extract(ctx context.Context, url string) (*dto.ExtractedRecipe, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("extract: EXTRACT_SERVICE_URL no configurado")
	}

	body, err := json.Marshal(extractRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("extract: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extract: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("extract: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("extract: leer respuesta: %w", err)
	}

	var out extractResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &out); jsonErr == nil && out.Error != nil {
			return nil, fmt.Errorf("extract: servicio respondió (%s): %s", out.Error.Code, out.Error.Message)
		}
		return nil, fmt.Errorf("extract: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("extract: deserializar respuesta: %w", err)
	}
	if out.Title == "" {
		return nil, fmt.Errorf("extract: el servicio devolvió una receta sin título")
	}
	return &out.ExtractedRecipe, nil
}
