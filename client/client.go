package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"quarteto/engine"
	"quarteto/lib/script"
)

type Client struct {
	httpclient *http.Client
	url        *url.URL
}

func NewClient(hostport string, httpclient *http.Client) (*Client, error) {
	url, err := url.Parse(hostport)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hostport [%s]: %v", hostport, err)
	}
	return &Client{
		url:        url,
		httpclient: httpclient,
	}, nil
}

func (c Client) runURL() string {
	c.url.Path = "/run"
	return c.url.String()
}

func (c Client) vocabulariesURL() string {
	c.url.Path = "/vocabularies"
	return c.url.String()
}

func (c Client) scriptsURL() string {
	c.url.Path = "/scripts"
	return c.url.String()
}

func (c Client) scriptURL(name string) string {
	c.url.Path = "/scripts/" + name
	c.url.RawPath = "/scripts/" + url.PathEscape(name)
	return c.url.String()
}

func (c Client) runScriptURL(name string) string {
	c.url.Path = "/scripts/" + name + "/run"
	c.url.RawPath = "/scripts/" + url.PathEscape(name) + "/run"
	return c.url.String()
}

func (c Client) postJSON(data []byte, url string) ([]byte, error) {
	reqBody := bytes.NewBuffer(data)
	response, err := c.httpclient.Post(url, "application/json", reqBody)
	if err != nil {
		return nil, fmt.Errorf("server error: %v", err)
	}
	return readResponse(response)
}

func (c Client) get(url string) ([]byte, error) {
	response, err := c.httpclient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("server error: %v", err)
	}
	return readResponse(response)
}

func readResponse(response *http.Response) ([]byte, error) {
	defer response.Body.Close()
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read server response: %v", err)
	}
	// handle http error given by the server
	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", script.ErrNotFound, bytes.TrimSpace(body))
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: %s", http.StatusText(response.StatusCode), bytes.TrimSpace(body))
	}
	return body, nil
}

// Run executes a program on the server.
func (c *Client) Run(request script.RunRequest) (engine.Result, error) {
	ser, err := json.Marshal(request)
	if err != nil {
		return engine.Result{}, fmt.Errorf("could not marshal run request: %v", err)
	}
	body, err := c.postJSON(ser, c.runURL())
	if err != nil {
		return engine.Result{}, err
	}
	return parseResult(body)
}

func (c *Client) Vocabularies() ([]string, error) {
	body, err := c.get(c.vocabulariesURL())
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("could not parse server response: %v", err)
	}
	return names, nil
}

// StoreScript saves s on the server and returns the id of the new version.
func (c *Client) StoreScript(s script.Script) (uint64, error) {
	ser, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("could not marshal script: %v", err)
	}
	body, err := c.postJSON(ser, c.scriptsURL())
	if err != nil {
		return 0, err
	}
	var stored script.Script
	if err := json.Unmarshal(body, &stored); err != nil {
		return 0, fmt.Errorf("could not parse server response: %v", err)
	}
	return stored.ID, nil
}

func (c *Client) GetScript(name string) (script.Script, error) {
	body, err := c.get(c.scriptURL(name))
	if err != nil {
		return script.Script{}, err
	}
	var s script.Script
	if err := json.Unmarshal(body, &s); err != nil {
		return script.Script{}, fmt.Errorf("could not parse server response: %v", err)
	}
	return s, nil
}

func (c *Client) ListScripts() ([]script.Script, error) {
	body, err := c.get(c.scriptsURL())
	if err != nil {
		return nil, err
	}
	scripts := make([]script.Script, 0)
	if err := json.Unmarshal(body, &scripts); err != nil {
		return nil, fmt.Errorf("could not parse server response: %v", err)
	}
	return scripts, nil
}

// RunScript executes the latest version of the stored script name.
func (c *Client) RunScript(name string, bindings map[string]string) (engine.Result, error) {
	ser, err := json.Marshal(map[string]interface{}{"bindings": bindings})
	if err != nil {
		return engine.Result{}, fmt.Errorf("could not marshal bindings: %v", err)
	}
	body, err := c.postJSON(ser, c.runScriptURL(name))
	if err != nil {
		return engine.Result{}, err
	}
	return parseResult(body)
}

func parseResult(body []byte) (engine.Result, error) {
	var res engine.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return engine.Result{}, fmt.Errorf("could not parse server response: %v", err)
	}
	return res, nil
}
