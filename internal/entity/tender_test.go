package entity

import (
	"encoding/json"
	"testing"

	"tender-drafting-api/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewTenderProcess_Defaults(t *testing.T) {
	p := NewTenderProcess("Nueva Licitación 1")

	require.Equal(t, uuid.Nil, p.Id)
	require.Equal(t, common.Draft, p.Status)
	require.NotEmpty(t, p.LastModified)
	require.Equal(t, "21", p.TenderData.Stage2.CreditCertificate.VatRate)
	require.Equal(t, "open", p.TenderData.Stage4.ProcedureType)
}

func TestNewBlankTenderData_SeedsEveryRegisteredDocument(t *testing.T) {
	data := NewBlankTenderData()

	for _, id := range DocumentFieldIdentifiers() {
		field, err := LookupDocumentField(id)
		require.NoError(t, err)

		doc := field.Doc(&data)
		require.Len(t, doc.Versions, 1, "field %s", id)
		require.Equal(t, doc.Versions[0].Id, doc.ActiveVersionId, "field %s", id)
		require.Equal(t, "", doc.Versions[0].Content, "field %s", id)
	}
}

func TestLookupDocumentField_Unknown(t *testing.T) {
	_, err := LookupDocumentField("stage1.nope")
	require.Error(t, err)
}

func TestTriState_JSONRoundTrip(t *testing.T) {
	type answers struct {
		A TriState `json:"a"`
		B TriState `json:"b"`
		C TriState `json:"c"`
	}

	raw, err := json.Marshal(answers{A: Yes, B: No, C: Unset})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":true,"b":false,"c":null}`, string(raw))

	var parsed answers
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Equal(t, Yes, parsed.A)
	require.Equal(t, No, parsed.B)
	require.Equal(t, Unset, parsed.C)

	require.Error(t, json.Unmarshal([]byte(`{"a":"maybe"}`), &parsed))
}

func TestTenderData_JSONRoundTripPreservesDocuments(t *testing.T) {
	data := NewBlankTenderData()
	data.Stage1.Needs = data.Stage1.Needs.AppendVersion("office supplies", "edited")
	data.Stage1.InfoSystemUsesAI = No

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var parsed TenderData
	require.NoError(t, json.Unmarshal(raw, &parsed))

	require.Equal(t, "office supplies", parsed.Stage1.Needs.ActiveContent())
	require.Len(t, parsed.Stage1.Needs.Versions, 2)
	require.Equal(t, No, parsed.Stage1.InfoSystemUsesAI)
	require.Equal(t, data.Stage3.CharacteristicsData.PromotingUnit, parsed.Stage3.CharacteristicsData.PromotingUnit)
}
