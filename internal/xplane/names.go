package xplane

// Dataref names. These strings are fixed contracts with the host.
const (
	JoystickAxisValues        = "sim/joystick/joystick_axis_values"
	JoystickAxisAssignments   = "sim/joystick/joystick_axis_assignments"
	JoystickAxisReverse       = "sim/joystick/joystick_axis_reverse"
	JoystickButtonValues      = "sim/joystick/joystick_button_values"
	JoystickButtonAssignments = "sim/joystick/joystick_button_assignments"
	HasJoystick               = "sim/joystick/has_joystick"

	JoystickPitchNullzone      = "sim/joystick/joystick_pitch_nullzone"
	JoystickRollNullzone       = "sim/joystick/joystick_roll_nullzone"
	JoystickHeadingNullzone    = "sim/joystick/joystick_heading_nullzone"
	JoystickPitchSensitivity   = "sim/joystick/joystick_pitch_sensitivity"
	JoystickRollSensitivity    = "sim/joystick/joystick_roll_sensitivity"
	JoystickHeadingSensitivity = "sim/joystick/joystick_heading_sensitivity"
	OverrideToeBrakes          = "sim/operation/override/override_toe_brakes"
	LeftBrakeRatio             = "sim/cockpit2/controls/left_brake_ratio"
	RightBrakeRatio            = "sim/cockpit2/controls/right_brake_ratio"
	SpeedbrakeRatio            = "sim/cockpit2/controls/speedbrake_ratio"
	ThrottleRatioAll           = "sim/cockpit2/engine/actuators/throttle_ratio_all"
	ThrottleBetaRevRatioAll    = "sim/cockpit2/engine/actuators/throttle_beta_rev_ratio_all"
	ThrottleJetRevRatioAll     = "sim/cockpit2/engine/actuators/throttle_jet_rev_ratio_all"
	PropRotationSpeedRadSecAll = "sim/cockpit2/engine/actuators/prop_rotation_speed_rad_sec_all"
	PropPitchDeg               = "sim/cockpit2/engine/actuators/prop_pitch_deg"
	MixtureRatioAll            = "sim/cockpit2/engine/actuators/mixture_ratio_all"
	CowlFlapRatio              = "sim/cockpit2/engine/actuators/cowl_flap_ratio"
	SpeedbrakeRequest          = "sim/flightmodel/controls/sbrkrqst"
	PreconfiguredAPType        = "sim/aircraft/autopilot/preconfigured_ap_type"
	AcfRSCRedlinePrp           = "sim/aircraft/controls/acf_RSC_redline_prp"
	AcfNumEngines              = "sim/aircraft/engine/acf_num_engines"
	AcfFeatheredPitch          = "sim/aircraft/overflow/acf_feathered_pitch"
	AcfHasBeta                 = "sim/aircraft/overflow/acf_has_beta"
	AcfSbrkEQ                  = "sim/aircraft/parts/acf_sbrkEQ"
	AcfEnType                  = "sim/aircraft/prop/acf_en_type"
	AcfMaxPitch                = "sim/aircraft/prop/acf_max_pitch"
	AcfMinPitch                = "sim/aircraft/prop/acf_min_pitch"
	AcfPropType                = "sim/aircraft/prop/acf_prop_type"
	AcfRevthrustEq             = "sim/aircraft/prop/acf_revthrust_eq"
	AcfICAO                    = "sim/aircraft/view/acf_ICAO"
	AcfCockpitType             = "sim/aircraft/view/acf_cockpit_type"
	AcfPeX                     = "sim/aircraft/view/acf_peX"
	AcfPeY                     = "sim/aircraft/view/acf_peY"
	AcfPeZ                     = "sim/aircraft/view/acf_peZ"
	VREnabled                  = "sim/graphics/VR/enabled"
	CinemaVerite               = "sim/graphics/view/cinema_verite"
	PilotsHeadPsi              = "sim/graphics/view/pilots_head_psi"
	PilotsHeadThe              = "sim/graphics/view/pilots_head_the"
	ViewType                   = "sim/graphics/view/view_type"
	AirbusThrottleInput        = "AirbusFBW/throttle_input"
)

// Fixed array sizes of the joystick datarefs.
const (
	NumAxes    = 100
	NumButtons = 1600
	MaxEngines = 8
)

// Axis assignment values written to JoystickAxisAssignments.
const (
	AxisNone          = 0
	AxisPitch         = 1
	AxisRoll          = 2
	AxisYaw           = 3
	AxisLeftToeBrake  = 6
	AxisRightToeBrake = 7
)

// View types reported by ViewType.
const (
	ViewForwardsWithPanel    = 1000
	ViewChase                = 1017
	ViewForwardsWithHUD      = 1023
	View3DCockpitCommandLook = 1026
)

// Built-in command names.
const (
	CmdNone                   = "sim/none/none"
	CmdFlightDirDown          = "sim/autopilot/Flight-Dir Down"
	CmdControlWheelSteer      = "sim/autopilot/control_wheel_steer"
	CmdServosOffAny           = "sim/autopilot/servos_off_any"
	CmdCarbHeatToggle         = "sim/engines/carb_heat_toggle"
	CmdAileronTrimCenter      = "sim/flight_controls/aileron_trim_center"
	CmdAileronTrimLeft        = "sim/flight_controls/aileron_trim_left"
	CmdAileronTrimRight       = "sim/flight_controls/aileron_trim_right"
	CmdBrakesToggleMax        = "sim/flight_controls/brakes_toggle_max"
	CmdFlapsDown              = "sim/flight_controls/flaps_down"
	CmdFlapsUp                = "sim/flight_controls/flaps_up"
	CmdLandingGearToggle      = "sim/flight_controls/landing_gear_toggle"
	CmdPitchTrimDown          = "sim/flight_controls/pitch_trim_down"
	CmdPitchTrimUp            = "sim/flight_controls/pitch_trim_up"
	CmdRudderTrimCenter       = "sim/flight_controls/rudder_trim_center"
	CmdRudderTrimLeft         = "sim/flight_controls/rudder_trim_left"
	CmdRudderTrimRight        = "sim/flight_controls/rudder_trim_right"
	CmdSpeedBrakesDownOne     = "sim/flight_controls/speed_brakes_down_one"
	CmdSpeedBrakesUpOne       = "sim/flight_controls/speed_brakes_up_one"
	CmdGeneralBackward        = "sim/general/backward"
	CmdGeneralDown            = "sim/general/down"
	CmdGeneralForward         = "sim/general/forward"
	CmdGeneralLeft            = "sim/general/left"
	CmdGeneralRight           = "sim/general/right"
	CmdGeneralRotLeft         = "sim/general/rot_left"
	CmdGeneralRotRight        = "sim/general/rot_right"
	CmdGeneralUp              = "sim/general/up"
	CmdGeneralZoomIn          = "sim/general/zoom_in"
	CmdGeneralZoomOut         = "sim/general/zoom_out"
	CmdView3DCockpitLook      = "sim/view/3d_cockpit_cmnd_look"
	CmdViewChase              = "sim/view/chase"
	CmdViewCircle             = "sim/view/circle"
	CmdViewForwardWith2DPanel = "sim/view/forward_with_2d_panel"
	CmdViewForwardWithHUD     = "sim/view/forward_with_hud"
)

// Third-party command names.
const (
	CmdHeadShakeStop      = "simcoders/headshake/stop"
	CmdAS350ForceTrim     = "AS350/Trim/Force_Trim"
	CmdAS350TrimRelease   = "AS350/Trim/Trim_Release"
	CmdB407ForceTrim      = "B407/flight_controls/force_trim"
	CmdB407TrimRelease    = "B407/flight_controls/trim_release"
	CmdEC135BeepAft       = "ec135/autopilot/beep_aft"
	CmdEC135BeepFwd       = "ec135/autopilot/beep_fwd"
	CmdEC135BeepLeft      = "ec135/autopilot/beep_left"
	CmdEC135BeepRight     = "ec135/autopilot/beep_right"
	CmdZiboCaptDiscoPress = "laminar/B738/autopilot/capt_disco_press"
)

// BuiltinCommands lists every built-in or third-party command name the session
// may bind or invoke.
var BuiltinCommands = []string{
	CmdNone, CmdFlightDirDown, CmdControlWheelSteer, CmdServosOffAny,
	CmdCarbHeatToggle, CmdAileronTrimCenter, CmdAileronTrimLeft,
	CmdAileronTrimRight, CmdBrakesToggleMax, CmdFlapsDown, CmdFlapsUp,
	CmdLandingGearToggle, CmdPitchTrimDown, CmdPitchTrimUp,
	CmdRudderTrimCenter, CmdRudderTrimLeft, CmdRudderTrimRight,
	CmdSpeedBrakesDownOne, CmdSpeedBrakesUpOne, CmdGeneralBackward,
	CmdGeneralDown, CmdGeneralForward, CmdGeneralLeft, CmdGeneralRight,
	CmdGeneralRotLeft, CmdGeneralRotRight, CmdGeneralUp, CmdGeneralZoomIn,
	CmdGeneralZoomOut, CmdView3DCockpitLook, CmdViewChase, CmdViewCircle,
	CmdViewForwardWith2DPanel, CmdViewForwardWithHUD, CmdHeadShakeStop,
	CmdAS350ForceTrim, CmdAS350TrimRelease, CmdB407ForceTrim,
	CmdB407TrimRelease, CmdEC135BeepAft, CmdEC135BeepFwd, CmdEC135BeepLeft,
	CmdEC135BeepRight, CmdZiboCaptDiscoPress,
}

// Plugin signatures that change command behavior.
const (
	SigDreamFoilAS350 = "DreamFoil.AS350"
	SigDreamFoilB407  = "DreamFoil.B407"
	SigRotorSimEC135  = "rotorsim.ec135.management"
	SigHeadShake      = "com.simcoders.headshake"
	SigToLiss         = "XP11.ToLiss.A319.systems"
	SigZibo           = "zibomod.by.Zibo"
	SigXIvAp          = "ivao.xivap"
	SigXSquawkBox     = "vatsim.protodev.clients.xsquawkbox"
)
