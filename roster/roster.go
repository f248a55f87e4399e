// Package roster models the people in a school: students and teachers share
// a Person record by embedding it.
package roster

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotEnrolled is returned when grading a course the student never joined.
var ErrNotEnrolled = errors.New("student is not enrolled in course")

// Person holds what every member of the school has.
type Person struct {
	Name   string `json:"name" yaml:"name"`
	Age    int    `json:"age" yaml:"age"`
	Gender string `json:"gender" yaml:"gender"`
}

// Introduce returns a one-line greeting.
func (p Person) Introduce() string {
	return fmt.Sprintf("Hi, my name is %s, I am %d years old.", p.Name, p.Age)
}

// Details returns the basic fields keyed by their display name.
func (p Person) Details() map[string]any {
	return map[string]any{"Name": p.Name, "Age": p.Age, "Gender": p.Gender}
}

// Student is a Person enrolled in courses.
type Student struct {
	Person
	StudentID  string `json:"student_id" yaml:"student_id"`
	GradeLevel int    `json:"grade_level" yaml:"grade_level"`

	courses []string
	grades  map[string]string
}

// NewStudent returns a student with no courses or grades.
func NewStudent(p Person, studentID string, gradeLevel int) *Student {
	return &Student{
		Person:     p,
		StudentID:  studentID,
		GradeLevel: gradeLevel,
		grades:     make(map[string]string),
	}
}

// Enroll adds course; it returns false when the student is already in it.
func (s *Student) Enroll(course string) bool {
	if slices.Contains(s.courses, course) {
		return false
	}
	s.courses = append(s.courses, course)
	return true
}

// Courses returns the courses in enrolment order.
func (s *Student) Courses() []string {
	return slices.Clone(s.courses)
}

// Grade returns the grade recorded for course, if any.
func (s *Student) Grade(course string) (string, bool) {
	g, ok := s.grades[course]
	return g, ok
}

// Grades returns a copy of every recorded grade.
func (s *Student) Grades() map[string]string {
	out := make(map[string]string, len(s.grades))
	for k, v := range s.grades {
		out[k] = v
	}
	return out
}

// Introduce extends the Person greeting with grade level and ID.
func (s *Student) Introduce() string {
	return fmt.Sprintf("%s I am in grade %d, my ID is %s.", s.Person.Introduce(), s.GradeLevel, s.StudentID)
}

// Teacher is a Person who teaches a subject and grades students.
type Teacher struct {
	Person
	EmployeeID string  `json:"employee_id" yaml:"employee_id"`
	Subject    string  `json:"subject" yaml:"subject"`
	Salary     float64 `json:"salary" yaml:"salary"`

	classes []string
}

// NewTeacher returns a teacher with no classes.
func NewTeacher(p Person, employeeID, subject string, salary float64) *Teacher {
	return &Teacher{Person: p, EmployeeID: employeeID, Subject: subject, Salary: salary}
}

// AssignGrade records grade for course on the student's record.
func (t *Teacher) AssignGrade(s *Student, course, grade string) error {
	if !slices.Contains(s.courses, course) {
		return fmt.Errorf("%s, course %q: %w", s.Name, course, ErrNotEnrolled)
	}
	if s.grades == nil {
		s.grades = make(map[string]string)
	}
	s.grades[course] = grade
	return nil
}

// AddClass adds a class taught; it returns false for a repeat.
func (t *Teacher) AddClass(name string) bool {
	if slices.Contains(t.classes, name) {
		return false
	}
	t.classes = append(t.classes, name)
	return true
}

// Classes returns the classes taught, in the order added.
func (t *Teacher) Classes() []string {
	return slices.Clone(t.classes)
}

// Introduce extends the Person greeting with subject and ID.
func (t *Teacher) Introduce() string {
	return fmt.Sprintf("%s I teach %s, my ID is %s.", t.Person.Introduce(), t.Subject, t.EmployeeID)
}
