package main

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// newClient returns a resty client rooted at the service base URL.
// The server keeps the session, so no cookies or tokens are carried here.
func newClient() *resty.Client {
	return resty.New().SetBaseURL(apiFlag).SetHeader("Content-Type", "application/json")
}

// checkResp turns a non-2xx response into an error carrying the body.
func checkResp(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
