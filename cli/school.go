package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"retailstore/mathematician"
	"retailstore/roster"
)

func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", a)
		}
		out = append(out, n)
	}
	return out, nil
}

func init() {
	mathCmd := &cobra.Command{
		Use:   "math",
		Short: "Integer list filters",
	}
	for _, f := range []struct {
		use, short string
		fn         func([]int) []int
	}{
		{"square <ints...>", "Square every number", mathematician.SquareNums},
		{"negatives <ints...>", "Drop positive numbers", mathematician.RemovePositives},
		{"leaps <years...>", "Keep leap years", mathematician.FilterLeaps},
	} {
		fn := f.fn
		mathCmd.AddCommand(&cobra.Command{
			Use:   f.use,
			Short: f.short,
			// negative numbers would otherwise parse as shorthand flags
			DisableFlagParsing: true,
			Args:               cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if slices.Contains(args, "-h") || slices.Contains(args, "--help") {
					return cmd.Help()
				}
				nums, err := parseInts(args)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), fn(nums))
				return nil
			},
		})
	}
	rootCmd.AddCommand(mathCmd)

	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "School roster examples",
	}
	rosterCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Enrol a student, grade them and print introductions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			student := roster.NewStudent(roster.Person{Name: "Ivan Sydorenko", Age: 16, Gender: "Male"}, "S001", 10)
			teacher := roster.NewTeacher(roster.Person{Name: "Maria Ivanova", Age: 40, Gender: "Female"}, "T005", "Physics", 25000)

			fmt.Fprintln(out, student.Introduce())
			fmt.Fprintln(out, teacher.Introduce())
			for _, c := range []string{"Math", "History", "Math"} {
				if !student.Enroll(c) {
					fmt.Fprintf(out, "%s is already enrolled in %q\n", student.Name, c)
				}
			}
			teacher.AddClass("10-A")
			teacher.AddClass("11-B")
			for _, g := range [][2]string{{"Math", "Excellent"}, {"Chemistry", "Good"}} {
				if err := teacher.AssignGrade(student, g[0], g[1]); err != nil {
					fmt.Fprintln(out, err)
				}
			}
			fmt.Fprintf(out, "courses: %v\nclasses: %v\ngrades: %v\n",
				student.Courses(), teacher.Classes(), student.Grades())
			return nil
		},
	})
	rootCmd.AddCommand(rosterCmd)
}
