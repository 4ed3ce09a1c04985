package cli

import (
	"github.com/spf13/cobra"

	"ctpostman/internal/lifecycle"
	"ctpostman/internal/method"
	"ctpostman/internal/step"
	"ctpostman/internal/wizard"
	"ctpostman/internal/workflow"
)

const defaultMethods = "POST,GET,PATCH,GET"

func newRunCommand(app *App) *cobra.Command {
	var (
		username    string
		password    string
		newUsername string
		methods     string
		code        string
		id          string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the wizard non-interactively",
		Long: `Run all four steps in order with the given inputs:
  1. CREATE    - POST username and password
  2. VERIFY    - GET the record by the code CREATE returned
  3. UPDATE    - PATCH the record's username by id
  4. REDIRECT  - GET the users listing

--methods picks the verb sent at each step, so a wrong guess fails the way
it would in the interactive client. --code and --id default to the values
the previous step returned.

Example:
  ctpostman run --username demo --password pw --new-username demo2
  ctpostman run --username demo --password pw --new-username demo2 --methods POST,POST,PATCH,GET`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r := app.router()

			verbs, err := method.ParseList(methods)
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			plan, err := lifecycle.PlanFromMethods(r.Rules(), verbs)
			if err != nil {
				app.Printer.Error("%v", err)
				return NewExitError(1)
			}
			plan.Inputs = map[step.Step]step.Form{
				step.Create: {step.FieldUsername: username, step.FieldPassword: password},
				step.Verify: {step.FieldCode: code},
				step.Update: {step.FieldID: id, step.FieldUsername: newUsername},
			}

			w := wizard.NewWizard(workflow.NewRunner(app.Remote, app.Logger))
			w.SetRouter(r)
			w.SetLogger(app.Logger)

			executor := lifecycle.NewExecutor(w)
			executor.SetProgressCallback(func(i, total int, s step.Step, m method.Method) {
				app.Printer.StepStart(i, total, s, m)
			})
			executor.SetResultCallback(func(s step.Step, res workflow.StepResult) {
				app.Printer.StepSuccess(s, res.Message)
				if res.Code != "" {
					app.Printer.Echo("code", res.Code)
				}
				if res.ID != "" {
					app.Printer.Echo("id", res.ID)
				}
			})

			app.Printer.WizardHeader(r.Rules())
			if err := executor.Execute(cmd.Context(), plan); err != nil {
				app.Printer.StepFailure(w.Current(), userMessage(err))
				return NewExitError(1)
			}

			if res, ok := w.Result(step.Redirect); ok {
				app.Printer.Users(listingOf(res))
			}
			app.Printer.WizardComplete()
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for CREATE")
	cmd.Flags().StringVar(&password, "password", "", "password for CREATE")
	cmd.Flags().StringVar(&newUsername, "new-username", "", "username sent by UPDATE")
	cmd.Flags().StringVar(&methods, "methods", defaultMethods, "comma-separated verb per step")
	cmd.Flags().StringVar(&code, "code", "", "code for VERIFY (default: the code CREATE returned)")
	cmd.Flags().StringVar(&id, "id", "", "id for UPDATE (default: the id VERIFY returned)")

	return cmd
}
