package candidates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/odata"
	"github.com/hireflow/talent-gateway/polling"
	"github.com/hireflow/talent-gateway/remote"
	"github.com/hireflow/talent-gateway/utils"
)

type mockODataClient struct {
	mock.Mock
}

func (m *mockODataClient) CallFunction(ctx context.Context, req *odata.Request) (gjson.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(gjson.Result), args.Error(1)
}

func (m *mockODataClient) CallAction(ctx context.Context, req *odata.Request) (gjson.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(gjson.Result), args.Error(1)
}

func actionAt(path string) any {
	return mock.MatchedBy(func(req *odata.Request) bool {
		return req.Path("RecruitmentService") == path
	})
}

func TestUpdateStatus(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallAction", mock.Anything, mock.MatchedBy(func(req *odata.Request) bool {
		return req.Path("RecruitmentService") == "/Candidates('c-1')/RecruitmentService.updateStatus" &&
			req.BodyMap()["status"] == "hired"
	})).Return(gjson.Result{}, nil)

	service := NewService(odataClient, zap.NewNop())
	err := service.UpdateStatus(context.Background(), "c-1", "  Hired ")

	require.NoError(t, err)
	odataClient.AssertExpectations(t)
}

func TestUpdateStatus_UnknownStatusNeverCallsBackend(t *testing.T) {
	odataClient := new(mockODataClient)

	service := NewService(odataClient, zap.NewNop())
	err := service.UpdateStatus(context.Background(), "c-1", "promoted")

	require.ErrorIs(t, err, ErrUnknownStatus)
	odataClient.AssertNotCalled(t, "CallAction", mock.Anything, mock.Anything)
}

func TestUpdateStatus_BackendFailureSurfaces(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallAction", mock.Anything, mock.Anything).
		Return(gjson.Result{}, remote.NewCallError("updateStatus", remote.KindStatus, 500, "backend down", nil))

	service := NewService(odataClient, zap.NewNop())
	err := service.UpdateStatus(context.Background(), "c-1", "hired")

	assert.True(t, remote.IsStatus(err), "mutations surface failures instead of falling back")
}

func TestScheduleInterview(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallAction", mock.Anything, actionAt("/Candidates('c-1')/RecruitmentService.scheduleInterview")).
		Return(gjson.Parse(`{"interviewId":"i-7"}`), nil)

	service := NewService(odataClient, zap.NewNop())
	interviewID, err := service.ScheduleInterview(context.Background(), ScheduleInterviewRequest{
		CandidateID: "c-1",
		JobID:       "j-1",
		Interviewer: "jordan@hireflow.io",
		ScheduledAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Mode:        "remote",
	})

	require.NoError(t, err)
	assert.Equal(t, "i-7", interviewID)
}

func TestScheduleInterview_ValidationFailsBeforeNetwork(t *testing.T) {
	odataClient := new(mockODataClient)
	service := NewService(odataClient, zap.NewNop())

	tests := []struct {
		name    string
		request ScheduleInterviewRequest
	}{
		{
			name: "missing candidate",
			request: ScheduleInterviewRequest{
				JobID:       "j-1",
				Interviewer: "jordan@hireflow.io",
				ScheduledAt: time.Now(),
			},
		},
		{
			name: "interviewer is not an email",
			request: ScheduleInterviewRequest{
				CandidateID: "c-1",
				JobID:       "j-1",
				Interviewer: "not-an-email",
				ScheduledAt: time.Now(),
			},
		},
		{
			name: "unknown mode",
			request: ScheduleInterviewRequest{
				CandidateID: "c-1",
				JobID:       "j-1",
				Interviewer: "jordan@hireflow.io",
				ScheduledAt: time.Now(),
				Mode:        "carrier-pigeon",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ScheduleInterview(context.Background(), tt.request)
			require.Error(t, err)
			assert.True(t, utils.IsValidationError(err))
		})
	}
	odataClient.AssertNotCalled(t, "CallAction", mock.Anything, mock.Anything)
}

func TestSubmitMatchFeedback(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallAction", mock.Anything, mock.MatchedBy(func(req *odata.Request) bool {
		return req.Path("RecruitmentService") == "/MatchResults('m-1')/RecruitmentService.submitMatchFeedback" &&
			req.BodyMap()["useful"] == true &&
			req.BodyMap()["comment"] == "spot on"
	})).Return(gjson.Result{}, nil)

	service := NewService(odataClient, zap.NewNop())
	err := service.SubmitMatchFeedback(context.Background(), "m-1", true, "spot on")

	require.NoError(t, err)
	odataClient.AssertExpectations(t)
}

func TestPublishJob(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallAction", mock.Anything, actionAt("/JobPostings('j-1')/RecruitmentService.publish")).
		Return(gjson.Result{}, nil)

	service := NewService(odataClient, zap.NewNop())
	require.NoError(t, service.PublishJob(context.Background(), "j-1"))
}

func TestStartMatchingRun(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallAction", mock.Anything, mock.MatchedBy(func(req *odata.Request) bool {
		return req.Path("RecruitmentService") == "/RecruitmentService.runMatching" &&
			req.BodyMap()["jobId"] == "j-1"
	})).Return(gjson.Parse(`{"runId":"run-42"}`), nil)

	service := NewService(odataClient, zap.NewNop())
	runID, err := service.StartMatchingRun(context.Background(), "j-1")

	require.NoError(t, err)
	assert.Equal(t, "run-42", runID)
}

func TestStartMatchingRun_EmptyJobIDFailsValidation(t *testing.T) {
	odataClient := new(mockODataClient)
	service := NewService(odataClient, zap.NewNop())

	_, err := service.StartMatchingRun(context.Background(), "")

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	odataClient.AssertNotCalled(t, "CallAction", mock.Anything, mock.Anything)
}

func TestGetMatchingProgress_DerivesPercentWhenAbsent(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallFunction", mock.Anything, mock.MatchedBy(func(req *odata.Request) bool {
		return req.Path("RecruitmentService") == "/getMatchingProgress(runId='run-42')"
	})).Return(gjson.Parse(`{"processed":30,"total":120,"status":"running"}`), nil)

	service := NewService(odataClient, zap.NewNop())
	progress, err := service.GetMatchingProgress(context.Background(), "run-42")

	require.NoError(t, err)
	assert.Equal(t, MatchingProgress{
		RunID:     "run-42",
		Processed: 30,
		Total:     120,
		Percent:   25,
		Status:    "running",
	}, progress)
}

func TestTrackMatchingRun_PollsUntilCompleted(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallFunction", mock.Anything, mock.Anything).
		Return(gjson.Parse(`{"processed":50,"total":100,"status":"running"}`), nil).Once()
	odataClient.On("CallFunction", mock.Anything, mock.Anything).
		Return(gjson.Parse(`{"processed":100,"total":100,"status":"completed"}`), nil).Once()

	done := make(chan MatchingProgress, 1)
	service := NewService(odataClient, zap.NewNop())
	task := service.TrackMatchingRun(context.Background(), "run-42", 5*time.Millisecond,
		polling.Callbacks[MatchingProgress]{
			OnDone: func(p MatchingProgress) { done <- p },
		})

	select {
	case final := <-done:
		assert.Equal(t, "completed", final.Status)
		assert.Equal(t, 100, final.Percent)
	case <-time.After(time.Second):
		t.Fatal("matching run never completed")
	}
	task.Wait()
	odataClient.AssertExpectations(t)
}

func TestTrackMatchingRun_StopEndsPolling(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallFunction", mock.Anything, mock.Anything).
		Return(gjson.Parse(`{"processed":1,"total":100,"status":"running"}`), nil)

	service := NewService(odataClient, zap.NewNop())
	task := service.TrackMatchingRun(context.Background(), "run-42", 5*time.Millisecond,
		polling.Callbacks[MatchingProgress]{})

	time.Sleep(20 * time.Millisecond)
	task.Stop()
	task.Wait()
}

func TestTrackMatchingRun_ProbeErrorStopsTask(t *testing.T) {
	odataClient := new(mockODataClient)
	odataClient.On("CallFunction", mock.Anything, mock.Anything).
		Return(gjson.Result{}, errors.New("progress endpoint down"))

	errs := make(chan error, 1)
	service := NewService(odataClient, zap.NewNop())
	task := service.TrackMatchingRun(context.Background(), "run-42", 5*time.Millisecond,
		polling.Callbacks[MatchingProgress]{
			OnError: func(err error) { errs <- err },
		})

	select {
	case err := <-errs:
		assert.EqualError(t, err, "progress endpoint down")
	case <-time.After(time.Second):
		t.Fatal("probe error never surfaced")
	}
	task.Wait()
}
