package domain

import (
	"encoding/json"
	"time"
)

// PicklistValue is one entry of an enumerated field.
type PicklistValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDescriptor is one field of an object's describe result. Optional
// numeric and nillable attributes are pointers so "absent" stays distinct
// from zero. Raw keeps every attribute as received, for pass-through columns.
type FieldDescriptor struct {
	Name              string          `json:"name"`
	Label             string          `json:"label"`
	Type              string          `json:"type"`
	Custom            bool            `json:"custom"`
	Nillable          *bool           `json:"nillable"`
	Length            *int            `json:"length"`
	Precision         *int            `json:"precision"`
	Scale             *int            `json:"scale"`
	Calculated        bool            `json:"calculated"`
	CalculatedFormula string          `json:"calculatedFormula"`
	ReferenceTo       []string        `json:"referenceTo"`
	PicklistValues    []PicklistValue `json:"picklistValues"`
	SoapType          string          `json:"soapType"`
	ExtraTypeInfo     string          `json:"extraTypeInfo"`
	InlineHelpText    string          `json:"inlineHelpText"`
	Description       string          `json:"description"`
	ExternalID        bool            `json:"externalId"`

	Raw map[string]interface{} `json:"-"`
}

type fieldAlias FieldDescriptor

func (f *FieldDescriptor) UnmarshalJSON(data []byte) error {
	var a fieldAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = FieldDescriptor(a)
	f.Raw = raw
	return nil
}

// IsFormula reports a calculated field carrying an expression.
func (f FieldDescriptor) IsFormula() bool {
	return f.Calculated && f.CalculatedFormula != ""
}

// IsRollupSummary reports a calculated field without an expression.
func (f FieldDescriptor) IsRollupSummary() bool {
	return f.Calculated && f.CalculatedFormula == ""
}

// RawValue returns the attribute named key as received from the platform.
func (f FieldDescriptor) RawValue(key string) (interface{}, bool) {
	if f.Raw == nil {
		return nil, false
	}
	v, ok := f.Raw[key]
	return v, ok
}

type RecordTypeInfo struct {
	Name           string `json:"name"`
	DeveloperName  string `json:"developerName"`
	RecordTypeID   string `json:"recordTypeId"`
	Available      bool   `json:"available"`
	DefaultMapping bool   `json:"defaultRecordTypeMapping"`
	Master         bool   `json:"master"`
}

// ObjectDescribe is the schema describe result for one object.
type ObjectDescribe struct {
	Name            string            `json:"name"`
	Label           string            `json:"label"`
	LabelPlural     string            `json:"labelPlural"`
	Createable      bool              `json:"createable"`
	Updateable      bool              `json:"updateable"`
	Deletable       bool              `json:"deletable"`
	Searchable      bool              `json:"searchable"`
	Queryable       bool              `json:"queryable"`
	Custom          bool              `json:"custom"`
	FeedEnabled     bool              `json:"feedEnabled"`
	Fields          []FieldDescriptor `json:"fields"`
	RecordTypeInfos []RecordTypeInfo  `json:"recordTypeInfos"`
}

// ObjectSummary holds the object-level flags and counts shown on the
// object definition sheet.
type ObjectSummary struct {
	APIName         string
	Label           string
	LabelPlural     string
	Createable      bool
	Updateable      bool
	Deletable       bool
	Searchable      bool
	Queryable       bool
	Custom          bool
	FeedEnabled     bool
	FieldCount      int
	RecordTypeCount int
}

func (d *ObjectDescribe) Summary() ObjectSummary {
	return ObjectSummary{
		APIName:         d.Name,
		Label:           d.Label,
		LabelPlural:     d.LabelPlural,
		Createable:      d.Createable,
		Updateable:      d.Updateable,
		Deletable:       d.Deletable,
		Searchable:      d.Searchable,
		Queryable:       d.Queryable,
		Custom:          d.Custom,
		FeedEnabled:     d.FeedEnabled,
		FieldCount:      len(d.Fields),
		RecordTypeCount: len(d.RecordTypeInfos),
	}
}

// FieldAugmentation is secondary metadata for one field.
type FieldAugmentation struct {
	TrackHistory bool
	Description  string
}

// FieldMetadata is one record of the metadata API: a field's full name
// ("Object.Field" for per-field reads, bare name inside an object read).
type FieldMetadata struct {
	FullName     string
	TrackHistory bool
	Description  string
}

// ObjectMetadata is the object-level metadata record with its field entries.
type ObjectMetadata struct {
	FullName string
	Fields   []FieldMetadata
}

// GlobalObject is one entry of the global describe.
type GlobalObject struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Custom    bool   `json:"custom"`
	Queryable bool   `json:"queryable"`
}

type GlobalDescribe struct {
	SObjects []GlobalObject `json:"sobjects"`
}

// GeneratedDocument is a history record of one written document.
type GeneratedDocument struct {
	ID            int64     `json:"id"`
	ObjectAPIName string    `json:"object_api_name"`
	FilePath      string    `json:"file_path"`
	FieldCount    int       `json:"field_count"`
	GeneratedAt   time.Time `json:"generated_at"`
}
