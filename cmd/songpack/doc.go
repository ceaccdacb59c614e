// Package main implements songpack, a headless companion to the desktop app.
//
// songpack converts audio files into the Ogg Vorbis tracks Stellaris plays and
// writes the songs.asset and songs.txt definitions into the game's music folder:
//
//	songpack convert --out ./converted track1.mp3 ./albums/
//	songpack commit --out ./converted --dest ~/.steam/steam/steamapps/common/Stellaris/music
//	songpack build --out ./converted --dest <music dir> track1.mp3 track2.flac
package main
