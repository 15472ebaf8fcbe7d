package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileRequest_Validation(t *testing.T) {
	low := "low"
	invalid := "extreme"
	gpa := 3.7
	badGPA := 9.9

	tests := []struct {
		name    string
		request UpdateProfileRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty request is valid",
			request: UpdateProfileRequest{},
			wantErr: false,
		},
		{
			name: "valid full request",
			request: UpdateProfileRequest{
				Citizenship:   strPtr("New Zealand"),
				IncomeBracket: &low,
				Interests:     []string{"engineering", "music"},
				GPA:           &gpa,
			},
			wantErr: false,
		},
		{
			name:    "unknown income bracket",
			request: UpdateProfileRequest{IncomeBracket: &invalid},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "gpa out of range",
			request: UpdateProfileRequest{GPA: &badGPA},
			wantErr: true,
			errMsg:  "lte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPutTranscriptRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request PutTranscriptRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: PutTranscriptRequest{
				Subjects: []SubjectGradeEntry{
					{Subject: "Mathematics", Grade: "A-"},
					{Subject: "Physics", Grade: "87"},
				},
			},
			wantErr: false,
		},
		{
			name:    "no subjects",
			request: PutTranscriptRequest{Subjects: []SubjectGradeEntry{}},
			wantErr: true,
		},
		{
			name: "subject with empty grade",
			request: PutTranscriptRequest{
				Subjects: []SubjectGradeEntry{{Subject: "Mathematics", Grade: ""}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStartApplicationRequest_Validation(t *testing.T) {
	req := StartApplicationRequest{ScholarshipID: uuid.New()}
	require.NoError(t, req.Validate())

	req.ScholarshipID = uuid.Nil
	require.Error(t, req.Validate())
}

func TestAssistanceRequest_Validation(t *testing.T) {
	req := AssistanceRequest{ScholarshipID: uuid.New(), Draft: "my draft"}
	require.NoError(t, req.Validate())

	req.ScholarshipID = uuid.Nil
	require.Error(t, req.Validate())
}

func TestScheduleInterviewRequest_Validation(t *testing.T) {
	req := ScheduleInterviewRequest{
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		InterviewerName: "Dr. Okafor",
	}
	require.NoError(t, req.Validate())

	req.ScheduledAt = time.Time{}
	require.Error(t, req.Validate())
}

func TestReflectionRequest_Validation(t *testing.T) {
	req := ReflectionRequest{Notes: "went well"}
	require.NoError(t, req.Validate())

	req.Notes = ""
	require.Error(t, req.Validate())
}

func strPtr(s string) *string { return &s }
