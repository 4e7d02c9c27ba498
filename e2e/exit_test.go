//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	err = tf.StartApp()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should render the first card")

	// Set up exit monitoring before sending 'q'
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.Quit()

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly with 'q'")
		return
	case <-time.After(1500 * time.Millisecond):
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Errorf("Process only exited after Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendCtrlC()
	}
}

func TestApplicationExitWithCtrlC(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp("-tcell"))
	require.True(t, tf.Ready(), "Should render the first card")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.SendCtrlC()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after Ctrl+C")
	}
}
