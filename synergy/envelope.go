package synergy

import (
	"fmt"
	"strings"
)

// Operation is a SOAP operation exposed by PXPCommunication.asmx.
type Operation string

const (
	OpRequest  Operation = "ProcessWebServiceRequest"
	OpMultiWeb Operation = "ProcessWebServiceRequestMultiWeb"
)

const (
	soapNamespace     = "http://edupoint.com/webservices/"
	serviceHandleName = "PXPWebServices"
)

const envelopeTemplate = `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
  <soap12:Body>
    <%[1]s xmlns="%[2]s">
      <userID>%[3]s</userID>
      <password>%[4]s</password>
      <skipLoginLog>true</skipLoginLog>
      <parent>false</parent>
      <webServiceHandleName>%[5]s</webServiceHandleName>
      <methodName>%[6]s</methodName>
      <paramStr>%[7]s</paramStr>
    </%[1]s>
  </soap12:Body>
</soap12:Envelope>`

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes &, < and > for use as element text.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// BuildEnvelope renders the SOAP 1.2 envelope for one remote method call.
// The encoded params document is escaped again because paramStr carries
// it as text inside the outer document.
func BuildEnvelope(op Operation, methodName string, params map[string]any, creds Credentials) (string, error) {
	if params == nil {
		params = map[string]any{}
	}
	paramStr, err := Encode(params)
	if err != nil {
		return "", fmt.Errorf("encode %s params: %w", methodName, err)
	}

	return fmt.Sprintf(envelopeTemplate,
		op,
		soapNamespace,
		EscapeText(creds.Username),
		EscapeText(creds.Password),
		serviceHandleName,
		EscapeText(methodName),
		EscapeText(paramStr),
	), nil
}
