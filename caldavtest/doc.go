// Package caldavtest is the harness for exercising CalDAV servers with
// davclient: it loads credentials from the environment, provides embedded
// calendar fixtures, wires a Session per test and ships an in-memory CalDAV
// server for tests that should not leave the process.
//
// A typical test against a real server:
//
//	cfg, err := caldavtest.LoadConfig()
//	if err != nil {
//		t.Fatal(err)
//	}
//	s, err := caldavtest.NewSession(cfg, caldavtest.TestLogger(t))
//	if err != nil {
//		t.Fatal(err)
//	}
//	defer s.Cleanup(ctx)
//
//	if _, err := s.MakeCalendar(ctx); err != nil {
//		t.Fatal(err)
//	}
//	if _, err := s.PutFixture(ctx, "meeting.ics"); err != nil {
//		t.Fatal(err)
//	}
package caldavtest
