package sfclient

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/locvowork/objectdoc/internal/domain"
)

// MaxReadMetadataNames is the readMetadata limit per call.
const MaxReadMetadataNames = 10

const metadataNamespace = "http://soap.sforce.com/2006/04/metadata"

type metadataRecord struct {
	FullName     string           `xml:"fullName"`
	TrackHistory bool             `xml:"trackHistory"`
	Description  string           `xml:"description"`
	Fields       []metadataRecord `xml:"fields"`
}

type readMetadataResponse struct {
	Body struct {
		Records []metadataRecord `xml:"readMetadataResponse>result>records"`
	} `xml:"Body"`
}

// ReadObjectMetadata reads the CustomObject record of objectName together
// with its field entries.
func (c *Client) ReadObjectMetadata(ctx context.Context, objectName string) ([]domain.ObjectMetadata, error) {
	records, err := c.readMetadata(ctx, "CustomObject", []string{objectName})
	if err != nil {
		return nil, fmt.Errorf("read object metadata %s: %w", objectName, err)
	}
	out := make([]domain.ObjectMetadata, 0, len(records))
	for _, r := range records {
		om := domain.ObjectMetadata{FullName: r.FullName}
		for _, f := range r.Fields {
			if f.FullName == "" {
				continue
			}
			om.Fields = append(om.Fields, domain.FieldMetadata{
				FullName:     f.FullName,
				TrackHistory: f.TrackHistory,
				Description:  f.Description,
			})
		}
		out = append(out, om)
	}
	return out, nil
}

// ReadFieldMetadata reads CustomField records by "Object.Field" name.
func (c *Client) ReadFieldMetadata(ctx context.Context, fullNames []string) ([]domain.FieldMetadata, error) {
	if len(fullNames) > MaxReadMetadataNames {
		return nil, fmt.Errorf("read field metadata: %d names exceeds limit of %d", len(fullNames), MaxReadMetadataNames)
	}
	if len(fullNames) == 0 {
		return nil, nil
	}
	records, err := c.readMetadata(ctx, "CustomField", fullNames)
	if err != nil {
		return nil, fmt.Errorf("read field metadata: %w", err)
	}
	out := make([]domain.FieldMetadata, 0, len(records))
	for _, r := range records {
		out = append(out, domain.FieldMetadata{
			FullName:     r.FullName,
			TrackHistory: r.TrackHistory,
			Description:  r.Description,
		})
	}
	return out, nil
}

// readMetadata always yields a slice in response order. Records without a
// full name, which the API returns for unknown names, are dropped.
func (c *Client) readMetadata(ctx context.Context, metadataType string, fullNames []string) ([]metadataRecord, error) {
	body, err := readMetadataEnvelope(c.sessionID, metadataType, fullNames)
	if err != nil {
		return nil, err
	}
	data, err := c.postSOAP(ctx, c.metadataURL, "readMetadata", body)
	if err != nil {
		return nil, err
	}

	var resp readMetadataResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode readMetadata: %w", err)
	}
	out := make([]metadataRecord, 0, len(resp.Body.Records))
	for _, r := range resp.Body.Records {
		if r.FullName == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func readMetadataEnvelope(sessionID, metadataType string, fullNames []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	buf.WriteString(`<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	buf.WriteString(`<env:Header><SessionHeader xmlns="` + metadataNamespace + `"><sessionId>`)
	if err := xml.EscapeText(&buf, []byte(sessionID)); err != nil {
		return nil, err
	}
	buf.WriteString(`</sessionId></SessionHeader></env:Header>`)
	buf.WriteString(`<env:Body><readMetadata xmlns="` + metadataNamespace + `"><type>`)
	if err := xml.EscapeText(&buf, []byte(metadataType)); err != nil {
		return nil, err
	}
	buf.WriteString(`</type>`)
	for _, n := range fullNames {
		buf.WriteString(`<fullNames>`)
		if err := xml.EscapeText(&buf, []byte(n)); err != nil {
			return nil, err
		}
		buf.WriteString(`</fullNames>`)
	}
	buf.WriteString(`</readMetadata></env:Body></env:Envelope>`)
	return buf.Bytes(), nil
}

var _ domain.PlatformClient = (*Client)(nil)
