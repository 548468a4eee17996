// Package client consume la API HTTP de mascotas.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pets-service/internal/domain/pets"
	"pets-service/internal/platform/httpclient"
)

const userAgent = "petsctl"

type Client struct {
	http *httpclient.Client
}

// New crea un cliente contra addr (p.ej. http://localhost:3000).
func New(addr string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.New(addr,
		httpclient.WithTimeout(timeout),
		httpclient.WithUserAgent(userAgent),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// PetInput es el body de create/update. nil = campo ausente.
type PetInput struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

func (c *Client) List(ctx context.Context) ([]pets.Pet, error) {
	var out []pets.Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []pets.Pet{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, in PetInput) (pets.Pet, error) {
	var out pets.Pet
	err := c.http.DoJSON(ctx, http.MethodPost, "/pets", in, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int, in PetInput) (pets.Pet, error) {
	var out pets.Pet
	err := c.http.DoJSON(ctx, http.MethodPut, fmt.Sprintf("/pets/%d", id), in, &out)
	return out, err
}
