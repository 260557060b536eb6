package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		targets   []string
		ratioMode string
		maxDepth  string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute machine counts for target output rates",
		Long: `Propagate target rates (items per minute) down the production chains and
size every step.

Targets are item[:recipe]=rate and may be repeated. In whole ratio mode the
targets are scaled by the smallest factor that makes every machine count an
integer, up to the configured maximum.

Examples:
  craftchain plan --target iron_gear=30
  craftchain plan --target iron_gear:r_gear_fast=30 --target circuit=10 --ratio whole
  craftchain plan --target iron_gear=30 --max-depth 2 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := api.ParseTargets(targets)
			if err != nil {
				return err
			}
			depth, err := api.ParseDepth(maxDepth)
			if err != nil {
				return err
			}

			asJSON, err := jsonOutput()
			if err != nil {
				return err
			}

			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			view, err := s.service.ComputePlan(context.Background(), api.PlanRequest{
				Targets:   parsed,
				RatioMode: ratioMode,
				MaxDepth:  depth,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			return printPlan(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "Target as item[:recipe]=rate per minute (repeatable)")
	cmd.Flags().StringVar(&ratioMode, "ratio", "", "Ratio mode: fractional or whole (default from config)")
	cmd.Flags().StringVar(&maxDepth, "max-depth", "", "Maximum propagation depth (default from config)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func printPlan(out io.Writer, view *api.PlanView) error {
	fmt.Fprintf(out, "Plan %s (%s", view.PlanID, view.RatioMode)
	if view.ScaleFactor > 1 {
		fmt.Fprintf(out, ", scaled x%d", view.ScaleFactor)
	}
	if view.Cached {
		fmt.Fprint(out, ", cached")
	}
	fmt.Fprintln(out, ")")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECIPE\tFACILITY\tCRAFTS/MIN\tMACHINES\tOUTPUTS")
	fmt.Fprintln(w, "------\t--------\t----------\t--------\t-------")
	for _, step := range view.Steps {
		facility := step.FacilityName
		if facility == "" {
			facility = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			step.RecipeID,
			facility,
			formatRate(step.CraftsPerMin),
			formatMachines(step.MachinesExact, step.Machines),
			strings.Join(step.Outputs, ","),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tNEEDED/MIN\tYIELD/MIN\tNOTE")
	fmt.Fprintln(w, "----\t----------\t---------\t----")
	for _, item := range view.Items {
		yield := "-"
		if item.YieldPerMin != nil {
			yield = formatRate(*item.YieldPerMin)
		}
		note := ""
		switch {
		case item.IsBottleneck:
			note = "bottleneck"
		case item.RecipeID == "":
			note = "raw input"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ItemName, formatRate(item.NeededPerMin), yield, note)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Total machines: %s\n", formatRate(view.TotalMachines))
	fmt.Fprintf(out, "Target output:  %s/min\n", formatRate(view.TotalTargetOutputPerMin))
	if len(view.RawInputs) > 0 {
		fmt.Fprintf(out, "Raw inputs:     %s\n", strings.Join(view.RawInputs, ", "))
	}
	return nil
}
