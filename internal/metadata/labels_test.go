package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/locvowork/objectdoc/internal/domain"
	"github.com/locvowork/objectdoc/internal/testsupport"
	"github.com/stretchr/testify/assert"
)

func TestReferenceTargets(t *testing.T) {
	fields := []domain.FieldDescriptor{
		{Name: "AccountId", Type: "reference", ReferenceTo: []string{"Account"}},
		{Name: "WhoId", Type: "reference", ReferenceTo: []string{"Contact", "Lead"}},
		{Name: "ParentId", Type: "reference", ReferenceTo: []string{"Account"}},
		{Name: "Orphan", Type: "reference"},
		{Name: "Name", Type: "string", ReferenceTo: []string{"Ignored"}},
	}
	assert.Equal(t, []string{"Account", "Contact"}, ReferenceTargets(fields))
}

func TestResolveReferenceLabels(t *testing.T) {
	client := testsupport.NewFakeClient()
	client.AddObject(&domain.ObjectDescribe{Name: "Account", Label: "Customer"})
	client.DescribeErrors["Secret__c"] = errors.New("INVALID_TYPE")

	fields := []domain.FieldDescriptor{
		{Name: "AccountId", Type: "reference", ReferenceTo: []string{"Account"}},
		{Name: "Other__c", Type: "reference", ReferenceTo: []string{"Account"}},
		{Name: "Secret__c", Type: "reference", ReferenceTo: []string{"Secret__c"}},
	}

	cache := ResolveReferenceLabels(context.Background(), client, fields)

	assert.Equal(t, []string{"Account", "Secret__c"}, client.DescribeCalls)
	l, _ := cache.Label("Account")
	assert.Equal(t, "Customer", l)
	l, _ = cache.Label("Secret__c")
	assert.Equal(t, "Secret__c", l)
}

func TestResolveReferenceLabelsFreshCache(t *testing.T) {
	client := testsupport.NewFakeClient()
	client.AddObject(&domain.ObjectDescribe{Name: "Account", Label: "Customer"})
	refs := []domain.FieldDescriptor{{Type: "reference", ReferenceTo: []string{"Account"}}}

	first := ResolveReferenceLabels(context.Background(), client, refs)
	l, _ := first.Label("Account")
	assert.Equal(t, "Customer", l)

	client.DescribeErrors["Account"] = errors.New("REQUEST_LIMIT_EXCEEDED")
	second := ResolveReferenceLabels(context.Background(), client, refs)
	l, _ = second.Label("Account")
	assert.Equal(t, "Account", l)
	assert.Equal(t, []string{"Account", "Account"}, client.DescribeCalls)

	third := ResolveReferenceLabels(context.Background(), client,
		[]domain.FieldDescriptor{{Type: "string"}})
	assert.Equal(t, 0, third.Len())
}
