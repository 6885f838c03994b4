package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commandlink/uccaas-import-gen/internal/ingest"
)

var testCtx = ingest.CustomerContext{
	CustomerName:     "Acme Dental",
	Region:           "CH",
	Timezone:         "America/Chicago",
	BusinessGroupLCC: "312",
}

func TestBuildBusinessGroup(t *testing.T) {
	rec := BuildBusinessGroup(testCtx)

	require.Len(t, rec, len(BusinessGroupHeaders))
	assert.Equal(t, Record{
		"CommandLink",
		"CommandLink_vEAS_LV",
		"Acme Dental",
		"CH BG",
		"CH BG",
		"",
		"TRUE",
		"0",
		"TRUE",
		"16",
		"Enhanced",
		"EAS Voicemail",
		"312",
		"Standard Subscribers",
	}, rec)
}

func TestBuildNumberBlock(t *testing.T) {
	assert.Equal(t, Record{"5551234567", "1"}, BuildNumberBlock("5551234567"))
}

func TestBuildDepartment(t *testing.T) {
	assert.Equal(t, Record{"Sales"}, BuildDepartment("Sales"))
}

func TestBuildSubscriber(t *testing.T) {
	in := SubscriberInput{
		Row: ingest.UserRow{
			Name:         "Jane Doe",
			Phone:        "5551234567",
			CallingParty: "5551234567",
			Extension:    "1001",
			Email:        "jane@acme.example",
			AccountType:  "Location Admin",
			Department:   "Sales",
			TemplateRaw:  "UCaaS|Link Standard",
		},
		Template: "CH_STD",
		LCC1:     "CHICAGO ZONE 1",
		LCC2:     "358",
		LCC3:     "555",
	}

	rec := BuildSubscriber(in, testCtx)
	require.Len(t, rec, len(SubscriberHeaders))

	assert.Equal(t, "5551234567", rec[2])
	assert.Equal(t, "CH_STD", rec[3])
	assert.Equal(t, "Acme Dental", rec[4])
	assert.Equal(t, "Acme Dental", rec[5])
	assert.Equal(t, "Standard Subscribers", rec[6])
	assert.Equal(t, "Jane Doe", rec[7])
	assert.Equal(t, "Jane Doe", rec[8])
	assert.Equal(t, "eng", rec[11])
	assert.Equal(t, "Administrator", rec[13])
	assert.Equal(t, "Administrator", rec[14])
	assert.Equal(t, "TRUE", rec[15])
	assert.Equal(t, "Jane Doe", rec[16])
	assert.Equal(t, "jane@acme.example", rec[17])

	// No per-row timezone, so the customer default applies to both columns.
	assert.Equal(t, "America/Chicago", rec[18])
	assert.Equal(t, "America/Chicago", rec[19])

	// Charge and emergency numbers are always the subscriber's own number.
	assert.Equal(t, "5551234567", rec[21])
	assert.Equal(t, "5551234567", rec[22])

	assert.Equal(t, "Sales", rec[23])
	assert.Equal(t, "Sales", rec[24])
	assert.Equal(t, "TRUE", rec[25])
	assert.Equal(t, Record{"CHICAGO ZONE 1", "358", "555"}, rec[26:29])
}

func TestBuildSubscriberNormalAccount(t *testing.T) {
	in := SubscriberInput{
		Row:      ingest.UserRow{Name: "Bob", Phone: "5550000001", AccountType: "End User"},
		Template: "CH_Lite",
	}
	rec := BuildSubscriber(in, testCtx)
	assert.Equal(t, "Normal", rec[13])
	assert.Equal(t, "Normal", rec[14])
}

func TestBuildSubscriberPerRowTimezoneWins(t *testing.T) {
	in := SubscriberInput{
		Row: ingest.UserRow{Name: "Bob", Phone: "5550000001", Timezone: "America/Denver"},
	}
	rec := BuildSubscriber(in, testCtx)
	assert.Equal(t, "America/Denver", rec[18])
	assert.Equal(t, "America/Denver", rec[19])
}

func TestBuildSubscriberAutoAttendantBlanksPresenceFields(t *testing.T) {
	in := SubscriberInput{
		Row:           ingest.UserRow{Name: "Main AA", Phone: "5559990000"},
		Template:      "CH_AA_Easy",
		AutoAttendant: true,
	}
	rec := BuildSubscriber(in, testCtx)

	assert.Empty(t, rec[15], "line state monitoring")
	assert.Empty(t, rec[16], "calling name delivery")
	assert.Empty(t, rec[25], "intra-BG calls flag")

	// Everything else stays populated.
	assert.Equal(t, "5559990000", rec[2])
	assert.Equal(t, "Main AA", rec[7])
}

func TestBuildManagedDevice(t *testing.T) {
	now := time.Date(2026, time.January, 31, 10, 30, 0, 0, time.UTC)
	row := ingest.UserRow{Phone: "5551234567", Name: "Jane Doe", MAC: " 00A1B2C3D4E5 "}

	rec, ok := BuildManagedDevice(row, now, 4)
	require.True(t, ok)
	require.Len(t, rec, len(ManagedDeviceHeaders))

	assert.Equal(t, "00A1B2C3D4E5", rec[0])
	assert.Equal(t, "TRUE", rec[1])
	assert.Equal(t, "5551234567", rec[2])

	// 28 days after Jan 31 2026 is Feb 28 2026; no leading zeros, double
	// space before the time.
	assert.Equal(t, "2/28/2026  11:59:59 PM", rec[3])

	assert.Equal(t, "2", rec[4])
	assert.Equal(t, "Determined by Endpoint Pack", rec[5])
}

func TestBuildManagedDeviceSkipsRowsWithoutMAC(t *testing.T) {
	now := time.Now()

	_, ok := BuildManagedDevice(ingest.UserRow{Phone: "5551234567"}, now, 4)
	assert.False(t, ok)

	_, ok = BuildManagedDevice(ingest.UserRow{Phone: "5551234567", MAC: "   "}, now, 4)
	assert.False(t, ok)

	_, ok = BuildManagedDevice(ingest.UserRow{MAC: "00A1B2C3D4E5"}, now, 4)
	assert.False(t, ok, "no phone number")
}

func TestBuildIntercomRange(t *testing.T) {
	rec, ok := BuildIntercomRange(ingest.UserRow{Phone: "5551234567", Extension: "1001"})
	require.True(t, ok)
	assert.Equal(t, Record{"1001", "1001", "5551234567"}, rec)

	_, ok = BuildIntercomRange(ingest.UserRow{Phone: "5551234567"})
	assert.False(t, ok)

	_, ok = BuildIntercomRange(ingest.UserRow{Extension: "1001"})
	assert.False(t, ok)
}

func TestBuildHuntGroup(t *testing.T) {
	group := ingest.HuntGroupRow{Name: "Sales Queue", Distribution: "Linear", Pilot: "5553334444"}
	members := []ingest.UserRow{
		{Phone: "5551111111", HuntGroup: "Sales Queue"},
		{Phone: "5552222222", HuntGroup: "Sales Queue"},
	}

	rec := BuildHuntGroup(group, members)
	require.Len(t, rec, len(HuntGroupHeaders))

	assert.Equal(t, "Sales Queue", rec[0])
	assert.Equal(t, "{'5551111111';'FALSE'};{'5552222222';'FALSE'}", rec[1])
	assert.Equal(t, "Linear", rec[2])
	assert.Equal(t, "FALSE", rec[3])
}

func TestBuildHuntGroupRingAllCasing(t *testing.T) {
	rec := BuildHuntGroup(ingest.HuntGroupRow{Name: "Support", Distribution: "Ring All"}, nil)
	assert.Equal(t, "Ring all", rec[2])
	assert.Equal(t, "", rec[1], "no members yields an empty member list")
}

func TestBuildHuntGroupPilot(t *testing.T) {
	rec, ok := BuildHuntGroupPilot(ingest.HuntGroupRow{
		Name:      "Sales Queue",
		Pilot:     "5553334444",
		Voicemail: "Yes",
	}, "CH")
	require.True(t, ok)

	assert.Equal(t, Record{
		"5553334444",
		"CH_MLHG_Pilot",
		"Sales Queue Pilot",
		"Sales Queue Pilot",
		"*",
		"*",
	}, rec)
}

func TestBuildHuntGroupPilotNoVoicemail(t *testing.T) {
	for _, vm := range []string{"", "No", "no", "anything"} {
		rec, ok := BuildHuntGroupPilot(ingest.HuntGroupRow{
			Name:      "Support",
			Pilot:     "5557778888",
			Voicemail: vm,
		}, "LV")
		require.True(t, ok)
		assert.Equal(t, "LV_MLHG_Pilot_NoVM", rec[1], "voicemail=%q", vm)
	}
}

func TestBuildHuntGroupPilotRequiresNameAndPilot(t *testing.T) {
	_, ok := BuildHuntGroupPilot(ingest.HuntGroupRow{Name: "Support"}, "CH")
	assert.False(t, ok)

	_, ok = BuildHuntGroupPilot(ingest.HuntGroupRow{Pilot: "5557778888"}, "CH")
	assert.False(t, ok)
}

func TestEligible(t *testing.T) {
	assert.True(t, Eligible(ingest.UserRow{Phone: "5551234567", TemplateRaw: "UCaaS|Link Standard"}))
	assert.True(t, Eligible(ingest.UserRow{Phone: "5551234567", TemplateRaw: "Unknown Plan"}))

	assert.False(t, Eligible(ingest.UserRow{TemplateRaw: "UCaaS|Link Standard"}), "blank phone")
	assert.False(t, Eligible(ingest.UserRow{Phone: "5551234567", TemplateRaw: "None"}))
	assert.False(t, Eligible(ingest.UserRow{Phone: "5551234567", TemplateRaw: "Reserve Number"}))
	assert.False(t, Eligible(ingest.UserRow{Phone: "5551234567", TemplateRaw: "None | Reserve Number"}))
}

func TestPad(t *testing.T) {
	assert.Equal(t, Record{"a", "", ""}, pad([]string{"a"}, 3))
	assert.Equal(t, Record{"a", "b"}, pad([]string{"a", "b", "c"}, 2))
}
