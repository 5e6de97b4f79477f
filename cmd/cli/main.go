package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		login(args)
	case "employee":
		handleEmployee(args)
	case "log":
		handleWorkLog(args)
	case "shift":
		handleShift(args)
	case "dashboard":
		showDashboard(args)
	case "notify":
		sendNotification(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleEmployee(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shiftline employee <list|add|delete>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listEmployees(args[1:])
	case "add":
		addEmployee(args[1:])
	case "delete":
		deleteEmployee(args[1:])
	default:
		fmt.Printf("unknown employee command: %s\n", subCmd)
	}
}

func handleWorkLog(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shiftline log <list|add|toggle-paid|note|pay>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listWorkLogs(args[1:])
	case "add":
		addWorkLog(args[1:])
	case "toggle-paid":
		togglePaid(args[1:])
	case "note":
		updateNote(args[1:])
	case "pay":
		batchPay(args[1:])
	default:
		fmt.Printf("unknown log command: %s\n", subCmd)
	}
}

func handleShift(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shiftline shift <list|request|take>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listOpenShifts(args[1:])
	case "request":
		requestShift(args[1:])
	case "take":
		takeShift(args[1:])
	default:
		fmt.Printf("unknown shift command: %s\n", subCmd)
	}
}

// Auth commands
func login(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *username == "" || *password == "" {
		fmt.Println("Error: username and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"username": *username, "password": *password}
	result, status, err := postJSON("/login", payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 200 {
		fmt.Printf("✓ Logged in as: %s (%v)\n", *username, result["role"])
	} else {
		fmt.Printf("✗ Login failed: %v\n", result["error"])
	}
}

// Employee commands
func listEmployees(args []string) {
	_ = args
	resp, err := http.Get(getAPIURL() + "/employees")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var employees []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&employees)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROLE\tEMAIL\tPHONE")
	for _, e := range employees {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", e["id"], e["name"], e["role"], e["email"], e["phone"])
	}
	w.Flush()
}

func addEmployee(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "employee name")
	role := fs.String("role", "", "job role")
	email := fs.String("email", "", "email (optional)")
	phone := fs.String("phone", "", "phone number (optional)")

	fs.Parse(args)

	if *name == "" || *role == "" {
		fmt.Println("Error: name and role are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"name": *name, "role": *role, "email": *email, "phone": *phone}
	result, status, err := postJSON("/employees", payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 201 {
		fmt.Printf("✓ Employee created: %s (id %v)\n", *name, result["id"])
		if user, ok := result["user_created"].(map[string]interface{}); ok {
			fmt.Printf("  login: %v / %v\n", user["username"], user["password"])
		}
	} else {
		fmt.Printf("✗ Create failed: %v\n", result["error"])
	}
}

func deleteEmployee(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shiftline employee delete <employee-id>")
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/employees/"+args[0], nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Employee %s deleted\n", args[0])
	} else {
		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		fmt.Printf("✗ Delete failed: %v\n", result["error"])
	}
}

// Work log commands
func listWorkLogs(args []string) {
	_ = args
	resp, err := http.Get(getAPIURL() + "/work-logs")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var logs []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&logs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tDATE\tHOURS\tPAID\tNOTES")
	for _, l := range logs {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			l["id"], l["employee_name"], l["date"], l["hours"], l["is_paid"], l["notes"])
	}
	w.Flush()
}

func addWorkLog(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	employee := fs.Int64("employee", 0, "employee ID")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	hours := fs.Float64("hours", 0, "hours worked (0 uses the default)")

	fs.Parse(args)

	if *employee == 0 || *date == "" {
		fmt.Println("Error: employee and date are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{
		"employee_id": *employee,
		"date":        *date,
		"hours":       *hours,
	}
	result, status, err := postJSON("/work-logs", payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 201 {
		fmt.Printf("✓ Work log added (id %v)\n", result["id"])
	} else {
		fmt.Printf("✗ Add failed: %v\n", result["error"])
	}
}

func togglePaid(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: shiftline log toggle-paid <log-id>")
		return
	}

	result, status, err := postJSON("/work-logs/"+args[0]+"/toggle-paid", map[string]string{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 200 {
		fmt.Printf("✓ Log %s paid: %v\n", args[0], result["is_paid"])
	} else {
		fmt.Printf("✗ Toggle failed: %v\n", result["error"])
	}
}

func updateNote(args []string) {
	fs := flag.NewFlagSet("note", flag.ExitOnError)
	id := fs.String("id", "", "work log ID")
	text := fs.String("text", "", "note text")

	fs.Parse(args)

	if *id == "" {
		fmt.Println("Error: id is required")
		fs.PrintDefaults()
		return
	}

	result, status, err := postJSON("/work-logs/"+*id+"/notes", map[string]string{"note": *text})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 200 {
		fmt.Printf("✓ Note updated\n")
	} else {
		fmt.Printf("✗ Update failed: %v\n", result["error"])
	}
}

func batchPay(args []string) {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	ids := fs.String("ids", "", "comma-separated work log IDs")

	fs.Parse(args)

	if *ids == "" {
		fmt.Println("Error: ids is required")
		fs.PrintDefaults()
		return
	}

	var logIDs []json.Number
	for _, part := range strings.Split(*ids, ",") {
		logIDs = append(logIDs, json.Number(strings.TrimSpace(part)))
	}

	result, status, err := postJSON("/work-logs/batch-pay", map[string]interface{}{"log_ids": logIDs})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 200 {
		fmt.Printf("✓ Marked %v logs paid\n", result["count"])
	} else {
		fmt.Printf("✗ Batch pay failed: %v\n", result["error"])
	}
}

// Shift commands
func listOpenShifts(args []string) {
	_ = args
	resp, err := http.Get(getAPIURL() + "/shift-requests")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var shifts []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&shifts)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREQUESTER\tDATE\tSTATUS")
	for _, s := range shifts {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", s["id"], s["requester_name"], s["date"], s["status"])
	}
	w.Flush()
}

func requestShift(args []string) {
	fs := flag.NewFlagSet("request", flag.ExitOnError)
	employee := fs.Int64("employee", 0, "requesting employee ID")
	date := fs.String("date", "", "shift date (YYYY-MM-DD)")

	fs.Parse(args)

	if *employee == 0 || *date == "" {
		fmt.Println("Error: employee and date are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{"requester_id": *employee, "date": *date}
	result, status, err := postJSON("/shift-requests", payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 201 {
		fmt.Printf("✓ Shift request posted (id %v)\n", result["id"])
	} else {
		fmt.Printf("✗ Request failed: %v\n", result["error"])
	}
}

func takeShift(args []string) {
	fs := flag.NewFlagSet("take", flag.ExitOnError)
	id := fs.String("id", "", "shift request ID")
	employee := fs.Int64("employee", 0, "taking employee ID")

	fs.Parse(args)

	if *id == "" || *employee == 0 {
		fmt.Println("Error: id and employee are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]interface{}{"taker_id": *employee}
	result, status, err := postJSON("/shift-requests/"+*id+"/take", payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	switch status {
	case 200:
		fmt.Printf("✓ %v\n", result["message"])
	case 409:
		fmt.Printf("✗ Shift already taken\n")
	default:
		fmt.Printf("✗ Take failed: %v\n", result["error"])
	}
}

// Dashboard
func showDashboard(args []string) {
	_ = args
	resp, err := http.Get(getAPIURL() + "/dashboard/stats")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var stats map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&stats)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Unpaid payroll cost\t%v\n", stats["payroll_cost_unpaid"])
	fmt.Fprintf(w, "Hours this week\t%v\n", stats["hours_this_week"])
	if top, ok := stats["top_employee"].(map[string]interface{}); ok {
		fmt.Fprintf(w, "Top employee\t%v (%v h)\n", top["name"], top["hours"])
	}
	fmt.Fprintf(w, "Paid logs\t%v\n", stats["paid_count"])
	fmt.Fprintf(w, "Unpaid logs\t%v\n", stats["unpaid_count"])
	w.Flush()
}

// Notifications
func sendNotification(args []string) {
	fs := flag.NewFlagSet("notify", flag.ExitOnError)
	phone := fs.String("phone", "", "recipient phone number")
	group := fs.String("group", "", "recipient group ID")
	message := fs.String("message", "", "message text")

	fs.Parse(args)

	if *message == "" || (*phone == "" && *group == "") {
		fmt.Println("Error: message and one of phone or group are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"phone": *phone, "group_id": *group, "message": *message}
	result, status, err := postJSON("/notifications", payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == 202 {
		fmt.Println("✓ Notification queued")
	} else {
		fmt.Printf("✗ Send failed: %v\n", result["error"])
	}
}

// Helper functions
func postJSON(path string, payload interface{}) (map[string]interface{}, int, error) {
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result, resp.StatusCode, nil
}

func getAPIURL() string {
	if url := os.Getenv("SHIFTLINE_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func printUsage() {
	fmt.Println(`shiftline - workforce management CLI

Usage:
  shiftline <command> [subcommand] [flags]

Commands:
  login       -username <u> -password <p>
  employee    list | add | delete
  log         list | add | toggle-paid | note | pay
  shift       list | request | take
  dashboard   show payroll dashboard stats
  notify      -phone <p> | -group <g> -message <m>
  help        show this help

Environment:
  SHIFTLINE_API   API base URL (default http://localhost:8080/api)`)
}
