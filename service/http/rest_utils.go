package main

import (
	"errors"
	"fmt"

	"quarteto/lib/script"

	"github.com/buger/jsonparser"
)

// Map of keys to if they are required or not.
var RUN_KEYS = map[string]bool{
	"vocabulary": false,
	"source":     true,
	"bindings":   false,
}

var SCRIPT_KEYS = map[string]bool{
	"id":         false,
	"name":       true,
	"vocabulary": true,
	"source":     true,
	"timestamp":  false,
}

var RUN_SCRIPT_KEYS = map[string]bool{
	"bindings": false,
}

func getRunRequestFromRest(data []byte) (script.RunRequest, error) {
	var request script.RunRequest
	if err := verifyFields(data, RUN_KEYS); err != nil {
		return request, fmt.Errorf("error unmarshalling run request json: %v", err)
	}
	var err error
	if request.Vocabulary, err = optionalString(data, "vocabulary"); err != nil {
		return request, fmt.Errorf("error unmarshalling run request json: %v", err)
	}
	if request.Source, err = optionalString(data, "source"); err != nil {
		return request, fmt.Errorf("error unmarshalling run request json: %v", err)
	}
	if request.Bindings, err = getBindings(data); err != nil {
		return request, fmt.Errorf("error unmarshalling run request json: %v", err)
	}
	return request, nil
}

func getScriptFromRest(data []byte) (script.Script, error) {
	var s script.Script
	if err := verifyFields(data, SCRIPT_KEYS); err != nil {
		return s, fmt.Errorf("error unmarshalling script json: %v", err)
	}
	var err error
	if s.Name, err = optionalString(data, "name"); err != nil {
		return s, fmt.Errorf("error unmarshalling script json: %v", err)
	}
	if s.Vocabulary, err = optionalString(data, "vocabulary"); err != nil {
		return s, fmt.Errorf("error unmarshalling script json: %v", err)
	}
	if s.Source, err = optionalString(data, "source"); err != nil {
		return s, fmt.Errorf("error unmarshalling script json: %v", err)
	}
	// ids and timestamps are assigned by the server
	return s, nil
}

func getRunScriptBindingsFromRest(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return map[string]string{}, nil
	}
	if err := verifyFields(data, RUN_SCRIPT_KEYS); err != nil {
		return nil, fmt.Errorf("error unmarshalling bindings json: %v", err)
	}
	bindings, err := getBindings(data)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling bindings json: %v", err)
	}
	return bindings, nil
}

// getBindings reads the optional "bindings" object. Every value must be a
// string since the interpreter only knows about text.
func getBindings(data []byte) (map[string]string, error) {
	bindings := make(map[string]string)
	vdata, vtype, _, err := jsonparser.Get(data, "bindings")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || vtype == jsonparser.Null {
		return bindings, nil
	}
	if err != nil {
		return nil, err
	}
	if vtype != jsonparser.Object {
		return nil, fmt.Errorf("bindings should be an object but got: %v", vtype)
	}
	err = jsonparser.ObjectEach(vdata, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		if dataType != jsonparser.String {
			return fmt.Errorf("binding '%s' should be a string but got: %v", name, dataType)
		}
		v, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		bindings[name] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func optionalString(data []byte, key string) (string, error) {
	vdata, vtype, _, err := jsonparser.Get(data, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || vtype == jsonparser.Null {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if vtype != jsonparser.String {
		return "", fmt.Errorf("%s should be a string but got: %v", key, vtype)
	}
	return jsonparser.ParseString(vdata)
}

func verifyFields(data []byte, keys map[string]bool) error {
	if _, vtype, _, err := jsonparser.Get(data); err != nil || vtype != jsonparser.Object {
		return fmt.Errorf("error unmarshalling json: expected an object")
	}
	seen := make(map[string]bool)
	err := jsonparser.ObjectEach(data, func(key []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		k := string(key)
		if _, ok := keys[k]; !ok {
			return fmt.Errorf("json has extra key: %v", k)
		}
		seen[k] = true
		return nil
	})
	if err != nil {
		return err
	}
	for key, required := range keys {
		if required && !seen[key] {
			return fmt.Errorf("json is missing key: %v", key)
		}
	}
	return nil
}
