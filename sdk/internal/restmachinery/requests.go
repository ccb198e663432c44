package restmachinery

import "github.com/xeipuuv/gojsonschema"

// OutboundRequest describes a call to the GED API.
type OutboundRequest struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	ReqBodyObj  interface{}
	SuccessCode int
	RespObj     interface{}

	// RespSchemaLoader optionally validates the response body before it is
	// decoded into RespObj.
	RespSchemaLoader gojsonschema.JSONLoader
}
