// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DemoStudent and DemoCandidate describe seed rows
type DemoStudent struct {
	StudentID string
	Name      string
}

type DemoCandidate struct {
	Name   string
	Course string
}

var DemoStudents = []DemoStudent{
	{"S001", "Aarav Sharma"},
	{"S002", "Diya Patel"},
	{"S003", "Kabir Singh"},
	{"S004", "Ananya Iyer"},
	{"S005", "Vihaan Gupta"},
	{"S006", "Ishita Rao"},
	{"S007", "Arjun Nair"},
	{"S008", "Meera Joshi"},
	{"S009", "Rohan Das"},
	{"S010", "Sara Khan"},
}

var DemoCandidates = []DemoCandidate{
	{"Priya Menon", "B.Tech Computer Science"},
	{"Rahul Verma", "B.Com"},
	{"Neha Kulkarni", "BBA"},
	{"Aditya Reddy", "B.Sc Physics"},
}

// Seed inserts the demo roster when the students table is empty.
// Returns true if rows were inserted.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range DemoStudents {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO students (student_id, name, has_voted)
			VALUES ($1, $2, FALSE)
		`, s.StudentID, s.Name)
		if err != nil {
			return false, fmt.Errorf("failed to seed student %s: %w", s.StudentID, err)
		}
	}

	for _, c := range DemoCandidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidates (name, course, total_votes)
			VALUES ($1, $2, 0)
		`, c.Name, c.Course)
		if err != nil {
			return false, fmt.Errorf("failed to seed candidate %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed data: %w", err)
	}

	return true, nil
}
