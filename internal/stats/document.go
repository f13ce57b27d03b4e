package stats

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
)

const userPath = "data.user"

// document reads the fields of a profile response under data.user.
type document struct {
	user gjson.Result
}

func notFound(raw json.RawMessage) *NotFoundError {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	errs := gjson.GetBytes(raw, "errors")
	if !errs.IsArray() {
		return nil
	}
	list := errs.Array()
	if len(list) == 0 {
		return nil
	}
	return &NotFoundError{Message: list[0].Get("message").String()}
}

func parseDocument(raw json.RawMessage) (document, error) {
	if !gjson.ValidBytes(raw) {
		return document{}, &MalformedResponseError{Path: "$", Reason: "is not valid JSON"}
	}
	user := gjson.GetBytes(raw, userPath)
	if !user.IsObject() {
		return document{}, &MalformedResponseError{Path: userPath, Reason: "is not an object"}
	}
	return document{user: user}, nil
}

func (d document) count(path string) (int, error) {
	return countAt(d.user, userPath, path)
}

// name tolerates null, GitHub returns it for users without a display name.
func (d document) name() (string, error) {
	v := d.user.Get("name")
	switch {
	case !v.Exists():
		return "", &MalformedResponseError{Path: userPath + ".name", Reason: "is missing"}
	case v.Type == gjson.Null:
		return "", nil
	case v.Type != gjson.String:
		return "", &MalformedResponseError{Path: userPath + ".name", Reason: "is not a string"}
	}
	return v.String(), nil
}

func (d document) stars() (int, error) {
	nodes := d.user.Get("repositories.nodes")
	if !nodes.IsArray() {
		return 0, &MalformedResponseError{Path: userPath + ".repositories.nodes", Reason: "is not an array"}
	}

	var total int
	for i, node := range nodes.Array() {
		n, err := countAt(node, userPath+".repositories.nodes."+strconv.Itoa(i), "stargazers.totalCount")
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func countAt(parent gjson.Result, prefix, path string) (int, error) {
	v := parent.Get(path)
	full := prefix + "." + path
	if !v.Exists() {
		return 0, &MalformedResponseError{Path: full, Reason: "is missing"}
	}
	if v.Type != gjson.Number {
		return 0, &MalformedResponseError{Path: full, Reason: "is not a number"}
	}
	n := v.Int()
	if n < 0 {
		return 0, &MalformedResponseError{Path: full, Reason: "is negative"}
	}
	return int(n), nil
}
