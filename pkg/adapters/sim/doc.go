// Package sim provides simulated rig hardware and a simulated host, so the trial
// logic can run unattended on a workstation.
package sim
