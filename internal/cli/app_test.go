package cli

import (
	"context"
	"testing"

	"daily-tracker/internal/config"
	"daily-tracker/internal/domain"
	"daily-tracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name:    "empty args",
			args:    []string{},
			wantErr: true,
		},
		{
			name: "mood command",
			args: []string{"mood", "5"},
			want: "Mood for 2024-03-10: 5/5\n",
		},
		{
			name: "rollover command",
			args: []string{"rollover"},
			want: "Rolled over to 2024-03-10: archived 0, kept 0, reset 0 daily\n",
		},
		{
			name:    "unknown command",
			args:    []string{"resume"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestAppWithMockBusinessAPI(t)

			output, err := captureOutput(t, func() error {
				return app.Run(context.Background(), tt.args)
			})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, output)
		})
	}
}

// rollingMock reports a performed rollover from Load.
type rollingMock struct {
	*mockBusinessAPI
}

func (m rollingMock) Load(ctx context.Context) (*services.LoadResult, error) {
	result, err := m.mockBusinessAPI.Load(ctx)
	if err != nil {
		return nil, err
	}
	result.Rollover = &services.RolloverResult{Date: m.today, Performed: true, Archived: 3}
	return result, nil
}

func TestApp_LoadReportsRollover(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{name: "quiet", verbose: false, want: ""},
		{name: "verbose", verbose: true, want: "New day: archived 3 completed task(s)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Application.Verbose = tt.verbose
			app := NewAppWithConfig(rollingMock{newMockBusinessAPI()}, cfg)

			output, err := captureOutput(t, func() error {
				return app.load(context.Background())
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, output)
		})
	}
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{
			name: "open task",
			task: domain.Task{ID: "a", Text: "Report"},
			want: "[ ] Report  a",
		},
		{
			name: "completed priority task",
			task: domain.Task{ID: "a", Text: "Report", Completed: true, Priority: true},
			want: "[x] ! Report  a",
		},
		{
			name: "daily habit",
			task: domain.Task{ID: "h", Text: "Be creative", IsDaily: true},
			want: "[ ] Be creative (daily)  h",
		},
		{
			name: "collapsed task counts subtasks",
			task: domain.Task{ID: "p", Text: "Launch", Subtasks: []domain.SubTask{
				{ID: "1", Completed: true}, {ID: "2"}, {ID: "3"},
			}},
			want: "[ ] Launch [1/3]  p",
		},
		{
			name: "expanded task omits the count",
			task: domain.Task{ID: "p", Text: "Launch", IsExpanded: true, Subtasks: []domain.SubTask{{ID: "1"}}},
			want: "[ ] Launch  p",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTask(tt.task))
		})
	}
}
