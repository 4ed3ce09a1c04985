package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctpostman/internal/api"
	"ctpostman/internal/method"
	"ctpostman/internal/router"
	"ctpostman/internal/step"
	"ctpostman/internal/wizard"
	"ctpostman/internal/workflow"
)

func demoRemote() *workflow.MockRemote {
	return &workflow.MockRemote{
		Results: map[string]api.Result{
			"create":      {Code: "ZT88QP", ID: "u1", Message: "created"},
			"get-by-code": {Code: "ZT88QP", ID: "u1", Message: "found"},
			"update":      {Message: "updated"},
		},
		Listing: api.Listing{Message: "Well done", Users: []api.User{{ID: "u1", Username: "demo2"}}},
	}
}

func demoPlan() Plan {
	return Plan{
		Inputs: map[step.Step]step.Form{
			step.Create: {step.FieldUsername: "demo", step.FieldPassword: "pw"},
			step.Update: {step.FieldUsername: "demo2"},
		},
	}
}

type progressRecord struct {
	Index, Total int
	Step         step.Step
	Method       method.Method
}

func TestExecutor_Execute(t *testing.T) {
	remote := demoRemote()
	w := wizard.NewWizard(workflow.NewRunner(remote, nil))
	executor := NewExecutor(w)

	var progress []progressRecord
	executor.SetProgressCallback(func(i, total int, s step.Step, m method.Method) {
		progress = append(progress, progressRecord{i, total, s, m})
	})
	var messages []string
	executor.SetResultCallback(func(s step.Step, res workflow.StepResult) {
		messages = append(messages, res.Message)
	})

	err := executor.Execute(context.Background(), demoPlan())

	require.NoError(t, err)
	assert.True(t, w.Done())
	assert.Equal(t, []progressRecord{
		{1, 4, step.Create, method.Post},
		{2, 4, step.Verify, method.Get},
		{3, 4, step.Update, method.Patch},
		{4, 4, step.Redirect, method.Get},
	}, progress)
	assert.Equal(t, []string{"created", "found", "updated", "Well done"}, messages)

	calls := remote.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "ZT88QP", calls[1].Arg, "code is taken from the create result")
	assert.Equal(t, "u1", calls[2].Arg, "id is taken from the verify result")
}

func TestExecutor_FailFastOnWrongMethod(t *testing.T) {
	remote := demoRemote()
	w := wizard.NewWizard(workflow.NewRunner(remote, nil))
	executor := NewExecutor(w)

	plan := demoPlan()
	plan.Methods = map[step.Step]method.Method{step.Verify: method.Post}

	err := executor.Execute(context.Background(), plan)

	require.Error(t, err)
	assert.ErrorIs(t, err, wizard.ErrMethodMismatch)
	assert.Equal(t, step.Verify, w.Current())
	assert.Equal(t, 1, remote.CallCount(), "only CREATE was sent")
}

func TestExecutor_ExplicitMismatchedCode(t *testing.T) {
	remote := demoRemote()
	w := wizard.NewWizard(workflow.NewRunner(remote, nil))

	plan := demoPlan()
	plan.Inputs[step.Verify] = step.Form{step.FieldCode: "WRONG1"}

	err := NewExecutor(w).Execute(context.Background(), plan)

	assert.ErrorIs(t, err, wizard.ErrPayloadMismatch)
	assert.Equal(t, 1, remote.CallCount())
}

func TestExecutor_RemoteFailureStops(t *testing.T) {
	remote := demoRemote()
	remote.Errors = map[string]error{"update": &api.Error{StatusCode: 404, Message: "not found"}}
	w := wizard.NewWizard(workflow.NewRunner(remote, nil))

	err := NewExecutor(w).Execute(context.Background(), demoPlan())

	assert.ErrorIs(t, err, wizard.ErrRemoteFailure)
	assert.Equal(t, step.Update, w.Current())
	assert.Equal(t, 3, remote.CallCount())
}

func TestExecutor_ResumesFromCurrentStep(t *testing.T) {
	remote := demoRemote()
	w := wizard.NewWizard(workflow.NewRunner(remote, nil))
	executor := NewExecutor(w)

	plan := demoPlan()
	plan.Methods = map[step.Step]method.Method{step.Update: method.Put}
	require.Error(t, executor.Execute(context.Background(), plan))

	steps, err := executor.GetSteps()
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, step.Update, steps[0].Step)

	require.NoError(t, executor.Execute(context.Background(), demoPlan()))
	assert.True(t, w.Done())
}

func TestExecutor_AlreadyDone(t *testing.T) {
	w := wizard.NewWizard(workflow.NewRunner(demoRemote(), nil))
	executor := NewExecutor(w)
	require.NoError(t, executor.Execute(context.Background(), demoPlan()))

	err := executor.Execute(context.Background(), demoPlan())
	assert.ErrorIs(t, err, router.ErrWizardComplete)

	_, err = executor.GetSteps()
	assert.ErrorIs(t, err, router.ErrWizardComplete)
}

func TestPlanFromMethods(t *testing.T) {
	rules := router.NewRouter().Rules()

	plan, err := PlanFromMethods(rules, []method.Method{method.Post, method.Get, method.Patch, method.Delete})
	require.NoError(t, err)
	assert.Equal(t, method.Delete, plan.Methods[step.Redirect])

	_, err = PlanFromMethods(rules, []method.Method{method.Post})
	assert.Error(t, err)
}
